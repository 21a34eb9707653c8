package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	Name             string    `gorm:"not null" json:"name"`
	Email            string    `gorm:"not null" json:"email"`
	Phone            string    `gorm:"default:''" json:"phone"`
	DateOfExperience time.Time `gorm:"not null" json:"dateOfExperience"`
	DateOfFeedback   time.Time `gorm:"not null" json:"dateOfFeedback"`

	// Before/after image URLs, both required at submission. The objects
	// live in S3; these are non-owning references.
	BeforeImg string `gorm:"not null" json:"beforeImg"`
	AfterImg  string `gorm:"not null" json:"afterImg"`

	OverallExp        int `gorm:"not null;check:overall_exp >= 1 AND overall_exp <= 5" json:"overallExp"`
	QualityOfService  int `gorm:"not null;check:quality_of_service >= 1 AND quality_of_service <= 5" json:"qualityOfService"`
	Timeliness        int `gorm:"not null;check:timeliness >= 1 AND timeliness <= 5" json:"timeliness"`
	Professionalism   int `gorm:"not null;check:professionalism >= 1 AND professionalism <= 5" json:"professionalism"`
	CommunicationEase int `gorm:"not null;check:communication_ease >= 1 AND communication_ease <= 5" json:"communicationEase"`

	WhatLikedMost         string `gorm:"type:text;default:''" json:"whatLikedMost"`
	SuggestionImprovement string `gorm:"type:text;default:''" json:"suggestionImprovement"`
	Recommendation        string `gorm:"type:text;default:''" json:"recommendation"`

	CanPublish bool `gorm:"default:false" json:"canPublish"`
	FollowUp   bool `gorm:"default:true" json:"followUp"`
}

// AverageRating returns the mean of the five rating fields rounded to two
// decimal places.
func (f *Feedback) AverageRating() float64 {
	sum := f.OverallExp + f.QualityOfService + f.Timeliness + f.Professionalism + f.CommunicationEase
	return math.Round(float64(sum)/5*100) / 100
}
