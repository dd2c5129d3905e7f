package models

import "time"

// Project is a company whose financial statements are being projected.
type Project struct {
	ID                 string    `json:"id" bson:"_id"`
	PANNumber          string    `json:"panNumber" bson:"pan_number"`
	CompanyName        string    `json:"companyName" bson:"company_name"`
	Address            string    `json:"address" bson:"address"`
	Logo               string    `json:"logo,omitempty" bson:"logo,omitempty"` // base64 encoded image data
	FinancialYearStart int       `json:"financialYearStart" bson:"financial_year_start"`
	FinancialYearEnd   int       `json:"financialYearEnd" bson:"financial_year_end"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}

// ProjectFormData carries the user-editable subset of Project. The ID and
// timestamps are always system-assigned.
type ProjectFormData struct {
	PANNumber          string `json:"panNumber"`
	CompanyName        string `json:"companyName"`
	Address            string `json:"address"`
	Logo               string `json:"logo,omitempty"`
	FinancialYearStart int    `json:"financialYearStart"`
	FinancialYearEnd   int    `json:"financialYearEnd"`
}
