package domain

import "time"

type Customer struct {
	Id            CustomerId
	Email         Email
	Username      string
	FirstName     string
	LastName      string
	PassHash      string
	Admin         bool
	ProfilePicURL string
	CreatedAt     time.Time
}

type Credentials struct {
	Login    string // email or username
	Password Password
}
