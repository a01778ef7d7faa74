// Package responder answers decoded queries from the authoritative record store.
package responder

import (
	"context"
	"errors"
	"net"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// ErrNotQuery is returned for messages that already have QR set. They are not answered.
var ErrNotQuery = errors.New("message is a response, not a query")

type Responder struct {
	store          RecordStore
	logger         log.Logger
	nxdomainOnMiss bool
}

type Options struct {
	Store  RecordStore
	Logger log.Logger
	// NXDomainOnMiss answers NXDOMAIN for names with no record at all.
	// Otherwise such queries get NOERROR with an empty answer section.
	NXDomainOnMiss bool
}

func New(opts Options) *Responder {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Responder{
		store:          opts.Store,
		logger:         logger,
		nxdomainOnMiss: opts.NXDomainOnMiss,
	}
}

// HandleRequest builds the response to req. A record is answered only when its
// name, type and class all match the question.
func (r *Responder) HandleRequest(ctx context.Context, req domain.Message, clientAddr net.Addr) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}
	if req.Header.Flags.QR() {
		return domain.Message{}, ErrNotQuery
	}

	q := req.Question
	if op := req.Header.Flags.Opcode(); op != domain.OpcodeQuery {
		r.logger.Debug(map[string]any{
			"client": addrString(clientAddr),
			"id":     req.Header.ID,
			"opcode": op,
		}, "Unsupported opcode")
		return domain.NewErrorResponse(req, domain.RCodeNotImp)
	}

	rec, found := r.store.Lookup(q.Name)
	switch {
	case found && q.Matches(rec):
		r.logger.Debug(map[string]any{
			"client": addrString(clientAddr),
			"id":     req.Header.ID,
			"name":   q.Name.String(),
			"answer": rec.Text(),
		}, "Answered from zone")
		return domain.NewResponse(req, rec), nil
	case !found && r.nxdomainOnMiss:
		r.logger.Debug(map[string]any{
			"client": addrString(clientAddr),
			"id":     req.Header.ID,
			"name":   q.Name.String(),
		}, "Name not in zone")
		return domain.NewErrorResponse(req, domain.RCodeNXDomain)
	default:
		r.logger.Debug(map[string]any{
			"client": addrString(clientAddr),
			"id":     req.Header.ID,
			"name":   q.Name.String(),
			"type":   q.Type.String(),
			"class":  q.Class.String(),
			"found":  found,
		}, "No matching record")
		return domain.NewResponse(req, nil), nil
	}
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
