package domain

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type (
	Email      = string
	Password   = string
	CustomerId = int64

	Emails = pq.StringArray // to save into postgres

	FileId  = uuid.UUID
	ShareId = uuid.UUID
)
