package models

import "time"

type Inquiry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	InquiryType   string    `json:"inquiry_type,omitempty"`
	Message       string    `json:"message"`
	PropertyID    string    `json:"property_id,omitempty"`
	PropertyTitle string    `json:"property_title,omitempty"`
	CreatedDate   time.Time `json:"created_date"`
}

func (i Inquiry) EntityID() string {
	return i.ID
}
