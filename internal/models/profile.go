package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience and Education entries carry their own id, assigned at insertion,
// so they can be removed later without positional bookkeeping.
type Experience struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Company     string     `bson:"company" json:"company"`
	Location    string     `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time  `bson:"from" json:"from"`
	To          *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool       `bson:"current" json:"current"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           string     `bson:"id" json:"id"`
	School       string     `bson:"school" json:"school"`
	Degree       string     `bson:"degree" json:"degree"`
	FieldOfStudy string     `bson:"fieldOfStudy" json:"fieldOfStudy"`
	From         time.Time  `bson:"from" json:"from"`
	To           *time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool       `bson:"current" json:"current"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
}

type Profile struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         bson.ObjectID `bson:"userId" json:"userId"`
	Handle         string        `bson:"handle" json:"handle"`
	Company        string        `bson:"company,omitempty" json:"company,omitempty"`
	Website        string        `bson:"website,omitempty" json:"website,omitempty"`
	Location       string        `bson:"location,omitempty" json:"location,omitempty"`
	Status         string        `bson:"status" json:"status"`
	Skills         []string      `bson:"skills" json:"skills"`
	Bio            string        `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string        `bson:"githubUsername,omitempty" json:"githubUsername,omitempty"`
	Experience     []Experience  `bson:"experience" json:"experience"`
	Education      []Education   `bson:"education" json:"education"`
	Social         Social        `bson:"social,omitempty" json:"social,omitempty"`
	CreatedAt      int           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      int           `bson:"updatedAt" json:"updatedAt"`
}

// ProfileSummary is the public listing projection, joined with the owning
// user's name and avatar.
type ProfileSummary struct {
	ID       bson.ObjectID `bson:"_id" json:"id"`
	UserID   bson.ObjectID `bson:"userId" json:"userId"`
	Name     string        `bson:"name" json:"name"`
	Avatar   string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Handle   string        `bson:"handle" json:"handle"`
	Location string        `bson:"location,omitempty" json:"location,omitempty"`
}
