// model/request.go
package model

import "time"

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestWaitlisted RequestStatus = "waitlisted"
	RequestApproved   RequestStatus = "approved"
	RequestRejected   RequestStatus = "rejected"
	RequestReturned   RequestStatus = "returned"
)

// Active reports whether the request still counts against the
// one-active-claim-per-(user,book) rule.
func (s RequestStatus) Active() bool {
	return s == RequestPending || s == RequestWaitlisted
}

type RequestAction string

const (
	ActionApprove RequestAction = "approve"
	ActionReject  RequestAction = "reject"
	ActionReturn  RequestAction = "return"
)

type Request struct {
	ID        int64         `json:"id"`
	UserEmail string        `json:"user_email"`
	BookID    int64         `json:"book_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
