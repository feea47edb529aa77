package models

import "time"

// Request payloads. Every write operation binds into one of these typed
// structs, so only the recognized fields ever reach the stores.

type RegisterRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,min=5,max=255,email"`
	Password  string `json:"password" validate:"required,min=8,max=50"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest uses pointers for the optional fields so a partial update
// can tell "absent" apart from "set to empty".
type ProfileRequest struct {
	Handle         string  `json:"handle" validate:"required,min=2,max=40"`
	Status         string  `json:"status" validate:"required"`
	Skills         string  `json:"skills" validate:"required"`
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty" validate:"omitempty,url"`
	Location       *string `json:"location,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubusername,omitempty"`
	Youtube        *string `json:"youtube,omitempty" validate:"omitempty,url"`
	Facebook       *string `json:"facebook,omitempty" validate:"omitempty,url"`
	Linkedin       *string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Instagram      *string `json:"instagram,omitempty" validate:"omitempty,url"`
}

type ExperienceRequest struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Company     string     `json:"company" validate:"required"`
	Location    *string    `json:"location,omitempty"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to,omitempty"`
	Current     *bool      `json:"current,omitempty"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type EducationRequest struct {
	School       string     `json:"school" validate:"required,max=100"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to,omitempty"`
	Current      *bool      `json:"current,omitempty"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type PostRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,max=700"`
}
