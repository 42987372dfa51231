package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Price       float64            `bson:"price" json:"price" binding:"required"`
	Type        string             `bson:"type" json:"type" binding:"required"`
	Emoji       string             `bson:"emoji" json:"emoji"`
}
