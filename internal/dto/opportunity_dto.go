package dto

import "career-compass-be/pkg/jobsearch"

type UserLocation struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type InternshipsResponse struct {
	Local        []jobsearch.Posting `json:"local"`
	Remote       []jobsearch.Posting `json:"remote"`
	UserLocation *UserLocation       `json:"userLocation"`
}

type Certificate struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Provider    string `json:"provider"`
	Skill       string `json:"skill"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type CertificatesResponse struct {
	Certificates []Certificate `json:"certificates"`
}
