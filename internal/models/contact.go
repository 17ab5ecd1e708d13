package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Contact is a message from the contact form. It is stored as-is; every
// field is optional and there is no relation to Story. SubmittedAt is the
// client-supplied string, kept verbatim.
type Contact struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Subject     string             `bson:"subject" json:"subject"`
	Category    string             `bson:"category" json:"category"`
	Message     string             `bson:"message" json:"message"`
	Culture     string             `bson:"culture" json:"culture"`
	Consent     bool               `bson:"consent" json:"consent"`
	SubmittedAt string             `bson:"submittedAt" json:"submittedAt"`
}
