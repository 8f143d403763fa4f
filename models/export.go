package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Export represents a generated user-export file archived in the database
type Export struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AdminID   int64              `bson:"admin_id"`
	FileName  string             `bson:"file_name"`
	FileData  []byte             `bson:"file_data"`
	UserCount int                `bson:"user_count"`
	CreatedAt time.Time          `bson:"created_at"`
}
