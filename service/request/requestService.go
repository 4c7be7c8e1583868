package requestsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kotresh75/Aws-Project/model"
	"github.com/kotresh75/Aws-Project/notification"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrUnauthorized      ErrCode = "UNAUTHORIZED"
	ErrDuplicateClaim    ErrCode = "DUPLICATE_ACTIVE_CLAIM"
	ErrOutOfStock        ErrCode = "OUT_OF_STOCK"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrStoreUnavailable  ErrCode = "STORE_UNAVAILABLE"
)

type codedError struct {
	code ErrCode
	err  error
}

func (e codedError) Error() string {
	if e.err != nil {
		return string(e.code) + ": " + e.err.Error()
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.err }

func makeErr(c ErrCode) error            { return codedError{code: c} }
func wrapErr(c ErrCode, err error) error { return codedError{code: c, err: err} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ----- collaborator contracts -----

// Catalog is the stock side of the store. Both conditional mutations must
// be atomic per book with respect to concurrent callers.
type Catalog interface {
	Get(ctx context.Context, id int64) (*model.Book, error)
	CompareAndDecrement(ctx context.Context, id int64) (bool, error)
	CompareAndIncrement(ctx context.Context, id int64) error
}

// Ledger is the request side. InsertIfAbsent must reject a second active
// claim for the same (user, book) pair with a unique violation, and
// SetStatus must only apply when the current status matches expected.
type Ledger interface {
	InsertIfAbsent(ctx context.Context, userEmail string, bookID int64, status model.RequestStatus) (*model.Request, error)
	Get(ctx context.Context, id int64) (*model.Request, error)
	SetStatus(ctx context.Context, id int64, expected, next model.RequestStatus) (bool, error)
	ListByRequester(ctx context.Context, userEmail string) ([]model.Request, error)
	ListAll(ctx context.Context) ([]model.Request, error)
}

// Directory resolves identities to roles and enumerates staff for fan-out.
type Directory interface {
	RoleOf(ctx context.Context, email string) (model.Role, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// Outbox receives fire-and-forget notification events after a mutation has
// been durably applied.
type Outbox interface {
	Enqueue(ev notification.Event)
}

type Service interface {
	// Create files a request for the given book. Stock is snapshotted to
	// classify the request as pending or waitlisted but is not consumed;
	// only approval consumes stock.
	Create(ctx context.Context, requesterEmail string, bookID int64) (*model.Request, error)

	// Transition applies approve, reject or return on behalf of a staff
	// actor and returns the updated request.
	Transition(ctx context.Context, actorEmail string, requestID int64, action model.RequestAction) (*model.Request, error)

	// ListAll returns every request; staff only.
	ListAll(ctx context.Context, actorEmail string) ([]model.Request, error)

	// ListMine returns the caller's own requests.
	ListMine(ctx context.Context, requesterEmail string) ([]model.Request, error)
}

// ----- Service implementation -----

type service struct {
	books    Catalog
	requests Ledger
	users    Directory
	out      Outbox

	locks sync.Map // request id -> *sync.Mutex
}

func New(books Catalog, requests Ledger, users Directory, out Outbox) Service {
	return &service{books: books, requests: requests, users: users, out: out}
}

func (s *service) Create(ctx context.Context, requesterEmail string, bookID int64) (*model.Request, error) {
	role, err := s.users.RoleOf(ctx, requesterEmail)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if role != model.RoleStudent {
		return nil, makeErr(ErrUnauthorized)
	}

	book, err := s.books.Get(ctx, bookID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	// point-in-time snapshot, not a reservation
	status := model.RequestPending
	if book.AvailableCopies < 1 {
		status = model.RequestWaitlisted
	}

	req, err := s.requests.InsertIfAbsent(ctx, requesterEmail, bookID, status)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if status == model.RequestPending {
		s.notifyRequester(req, "Request Received: "+book.Title,
			fmt.Sprintf("We received your request for '%s'. Status: pending approval.", book.Title))
		s.notifyStaff(ctx, req, "New Request: "+book.Title,
			fmt.Sprintf("%s has requested '%s'. Please review.", requesterEmail, book.Title))
	} else {
		s.notifyRequester(req, "Added to Waitlist: "+book.Title,
			fmt.Sprintf("'%s' is currently out of stock. You have been added to the waitlist.", book.Title))
		s.notifyStaff(ctx, req, "New Waitlist Entry: "+book.Title,
			fmt.Sprintf("%s joined the waitlist for '%s'.", requesterEmail, book.Title))
	}
	return req, nil
}

func (s *service) Transition(ctx context.Context, actorEmail string, requestID int64, action model.RequestAction) (*model.Request, error) {
	role, err := s.users.RoleOf(ctx, actorEmail)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if role != model.RoleStaff {
		return nil, makeErr(ErrUnauthorized)
	}

	// Transitions on one request run one at a time. approve briefly holds
	// the row in "approved" before the stock check settles, and that
	// intermediate state must never be visible to another transition.
	unlock := s.lockRequest(requestID)
	defer unlock()

	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	book, err := s.books.Get(ctx, req.BookID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	switch action {
	case model.ActionApprove:
		return s.approve(ctx, req, book)
	case model.ActionReject:
		return s.reject(ctx, req, book)
	case model.ActionReturn:
		return s.ret(ctx, req, book)
	default:
		return nil, makeErr(ErrInvalidTransition)
	}
}

func (s *service) lockRequest(id int64) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// approve claims the request row first, then the stock. Claiming the row
// serializes concurrent approvals of the same request: the loser sees zero
// rows affected and gets INVALID_TRANSITION without touching stock. If the
// decrement then fails, the claim is rolled back and the request stays in
// its prior status, per first-approved-wins.
func (s *service) approve(ctx context.Context, req *model.Request, book *model.Book) (*model.Request, error) {
	if !req.Status.Active() {
		return nil, makeErr(ErrInvalidTransition)
	}
	prior := req.Status

	ok, err := s.requests.SetStatus(ctx, req.ID, prior, model.RequestApproved)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !ok {
		return nil, makeErr(ErrInvalidTransition)
	}

	got, err := s.books.CompareAndDecrement(ctx, book.ID)
	if err != nil {
		_, _ = s.requests.SetStatus(ctx, req.ID, model.RequestApproved, prior)
		return nil, mapStoreErr(err)
	}
	if !got {
		_, _ = s.requests.SetStatus(ctx, req.ID, model.RequestApproved, prior)
		return nil, makeErr(ErrOutOfStock)
	}
	req.Status = model.RequestApproved

	s.notifyRequester(req, "Request Approved: "+book.Title,
		fmt.Sprintf("Your request for '%s' has been approved. Please pick it up from the library.", book.Title))
	s.notifyStaff(ctx, req, "Request Approved: "+book.Title,
		fmt.Sprintf("Request #%d for '%s' by %s was approved.", req.ID, book.Title, req.UserEmail))
	return req, nil
}

func (s *service) reject(ctx context.Context, req *model.Request, book *model.Book) (*model.Request, error) {
	if !req.Status.Active() {
		return nil, makeErr(ErrInvalidTransition)
	}
	ok, err := s.requests.SetStatus(ctx, req.ID, req.Status, model.RequestRejected)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !ok {
		return nil, makeErr(ErrInvalidTransition)
	}
	req.Status = model.RequestRejected

	s.notifyRequester(req, "Request Rejected: "+book.Title,
		fmt.Sprintf("Sorry, your request for '%s' was rejected by the staff.", book.Title))
	s.notifyStaff(ctx, req, "Request Rejected: "+book.Title,
		fmt.Sprintf("Request #%d for '%s' by %s was rejected.", req.ID, book.Title, req.UserEmail))
	return req, nil
}

func (s *service) ret(ctx context.Context, req *model.Request, book *model.Book) (*model.Request, error) {
	if req.Status != model.RequestApproved {
		return nil, makeErr(ErrInvalidTransition)
	}
	ok, err := s.requests.SetStatus(ctx, req.ID, model.RequestApproved, model.RequestReturned)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !ok {
		return nil, makeErr(ErrInvalidTransition)
	}
	if err := s.books.CompareAndIncrement(ctx, book.ID); err != nil {
		// keep status and stock consistent so the caller can retry
		_, _ = s.requests.SetStatus(ctx, req.ID, model.RequestReturned, model.RequestApproved)
		return nil, mapStoreErr(err)
	}
	req.Status = model.RequestReturned

	s.notifyRequester(req, "Book Returned: "+book.Title,
		fmt.Sprintf("You have successfully returned '%s'. Thank you!", book.Title))
	return req, nil
}

func (s *service) ListAll(ctx context.Context, actorEmail string) ([]model.Request, error) {
	role, err := s.users.RoleOf(ctx, actorEmail)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if role != model.RoleStaff {
		return nil, makeErr(ErrUnauthorized)
	}
	out, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return out, nil
}

func (s *service) ListMine(ctx context.Context, requesterEmail string) ([]model.Request, error) {
	out, err := s.requests.ListByRequester(ctx, requesterEmail)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return out, nil
}

func (s *service) notifyRequester(req *model.Request, subject, body string) {
	s.out.Enqueue(notification.Event{
		Recipient: req.UserEmail,
		Subject:   subject,
		Body:      body,
		RequestID: req.ID,
	})
}

// notifyStaff fans the event out to every staff identity. Delivery is
// best-effort: if the directory lookup fails the transition has already
// succeeded, so the fan-out is skipped rather than surfaced.
func (s *service) notifyStaff(ctx context.Context, req *model.Request, subject, body string) {
	staff, err := s.users.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return
	}
	for _, u := range staff {
		s.out.Enqueue(notification.Event{
			Recipient: u.Email,
			Subject:   subject,
			Body:      body,
			RequestID: req.ID,
		})
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return makeErr(ErrDuplicateClaim)
	}
	return wrapErr(ErrStoreUnavailable, err)
}
