package domain

import "time"

type Review struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateReviewRequest struct {
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
}

func (r *CreateReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ValidationError("rating must be between 1 and 5")
	}
	if r.Comment == "" {
		return ValidationError("comment is required")
	}
	if r.UserID == "" || r.PropertyID == "" {
		return ValidationError("userId and propertyId are required")
	}
	return nil
}

// ReviewPatch allows updating rating and comment only.
type ReviewPatch struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func (p *ReviewPatch) Validate() error {
	if p.Rating != nil && (*p.Rating < 1 || *p.Rating > 5) {
		return ValidationError("rating must be between 1 and 5")
	}
	if p.Comment != nil && *p.Comment == "" {
		return ValidationError("comment must not be empty")
	}
	return nil
}
