package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Like struct {
	UserID bson.ObjectID `bson:"userId" json:"userId"`
}

type Comment struct {
	ID        string        `bson:"id" json:"id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Text      string        `bson:"text" json:"text"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	Avatar    string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt int           `bson:"createdAt" json:"createdAt"`
}

// Post keeps a snapshot of the author's name and avatar taken at creation
// time; later identity changes do not propagate back into existing posts.
type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Text      string        `bson:"text" json:"text"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	Avatar    string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Likes     []Like        `bson:"likes" json:"likes"`
	Comments  []Comment     `bson:"comments" json:"comments"`
	CreatedAt int           `bson:"createdAt" json:"createdAt"`
}
