package shippers_api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BearBump/ShipperBox/internal/api/envelope"
	"github.com/BearBump/ShipperBox/internal/broker/messages"
	"github.com/BearBump/ShipperBox/internal/clock"
	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/BearBump/ShipperBox/internal/services/shippers"
	"github.com/BearBump/ShipperBox/internal/validation"
	"github.com/go-chi/chi/v5"
)

const bodyLimit = 1 << 20

type Service interface {
	Exists(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*shippers.ShipperDTO, error)
	GetAll(ctx context.Context) ([]*shippers.ShipperDTO, error)
	GetPage(ctx context.Context, from, size int) ([]*shippers.ShipperDTO, error)
	Search(ctx context.Context, companyName, phone string) ([]*shippers.ShipperDTO, error)
	Create(ctx context.Context, d *shippers.ShipperDTO) (models.Result, error)
	Update(ctx context.Context, d *shippers.ShipperDTO) (models.Result, error)
	Delete(ctx context.Context, id int) (models.Result, error)
}

// Publisher sends change notifications; see messages.ShipperChanged.
type Publisher interface {
	PublishJSON(ctx context.Context, topic, key string, v any) error
}

type ShippersAPI struct {
	svc       Service
	validator *validation.Validator
	publisher Publisher
	topic     string
	clock     clock.Clock
	debug     bool
	log       *slog.Logger
}

type Option func(*ShippersAPI)

func WithPublisher(p Publisher, topic string) Option {
	return func(a *ShippersAPI) {
		a.publisher = p
		a.topic = topic
	}
}

func WithClock(c clock.Clock) Option {
	return func(a *ShippersAPI) { a.clock = c }
}

// WithDebug exposes error details in 500 responses.
func WithDebug(debug bool) Option {
	return func(a *ShippersAPI) { a.debug = debug }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *ShippersAPI) { a.log = l }
}

func New(svc Service, opts ...Option) *ShippersAPI {
	a := &ShippersAPI{
		svc:       svc,
		validator: validation.New(),
		clock:     clock.Real{},
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	a.log = a.log.With("component", "shippers_api")
	return a
}

func (a *ShippersAPI) Register(r chi.Router) {
	r.Route("/api/shipper", func(r chi.Router) {
		r.Get("/all", a.getAll)
		r.Get("/from/{from}/size/{size}", a.getPage)
		r.Get("/search", a.search)
		r.Get("/", a.get)
		r.Post("/", a.create)
		r.Put("/", a.update)
		r.Delete("/", a.delete)
	})
}

func (a *ShippersAPI) getAll(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.GetAll(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	envelope.Success(w, r, out)
}

func (a *ShippersAPI) getPage(w http.ResponseWriter, r *http.Request) {
	var p pageParameter
	var bad []validation.Violation
	var err error
	if p.From, err = strconv.Atoi(chi.URLParam(r, "from")); err != nil {
		bad = append(bad, validation.Violation{Field: "From", Message: "The field From must be a number."})
	}
	if p.Size, err = strconv.Atoi(chi.URLParam(r, "size")); err != nil {
		bad = append(bad, validation.Violation{Field: "Size", Message: "The field Size must be a number."})
	}
	if len(bad) == 0 {
		bad = a.validator.Violations(p)
	}
	if len(bad) > 0 {
		envelope.Violations(w, r, bad)
		return
	}

	out, err := a.svc.GetPage(r.Context(), p.From, p.Size)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	envelope.Success(w, r, out)
}

func (a *ShippersAPI) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := searchParameter{CompanyName: q.Get("companyName"), Phone: q.Get("phone")}
	if bad := a.validator.Violations(p); len(bad) > 0 {
		envelope.Violations(w, r, bad)
		return
	}

	out, err := a.svc.Search(r.Context(), p.CompanyName, p.Phone)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	envelope.Success(w, r, out)
}

func (a *ShippersAPI) get(w http.ResponseWriter, r *http.Request) {
	var p idParameter
	raw := r.URL.Query().Get("shipperId")
	id, err := strconv.Atoi(raw)
	if err != nil && raw != "" {
		envelope.Violations(w, r, []validation.Violation{{Field: "ShipperID", Message: "The field ShipperID must be a number."}})
		return
	}
	p.ShipperID = id
	if bad := a.validator.Violations(p); len(bad) > 0 {
		envelope.Violations(w, r, bad)
		return
	}

	out, err := a.svc.GetByID(r.Context(), p.ShipperID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if out == nil {
		envelope.Failure(w, r, "shipper not exists")
		return
	}
	envelope.Success(w, r, out)
}

func (a *ShippersAPI) create(w http.ResponseWriter, r *http.Request) {
	var p shipperParameter
	if !a.decode(w, r, &p) {
		return
	}

	d := &shippers.ShipperDTO{CompanyName: p.CompanyName, Phone: p.Phone}
	res, err := a.svc.Create(r.Context(), d)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !res.Success {
		envelope.Failure(w, r, "create failure")
		return
	}

	a.publish(r.Context(), messages.ActionCreated, d)
	envelope.Success(w, r, envelope.Message{Message: "create success"})
}

func (a *ShippersAPI) update(w http.ResponseWriter, r *http.Request) {
	var p shipperUpdateParameter
	if !a.decode(w, r, &p) {
		return
	}

	d, err := a.svc.GetByID(r.Context(), p.ShipperID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if d == nil {
		envelope.Failure(w, r, "shipper not exists")
		return
	}

	d.CompanyName = p.CompanyName
	d.Phone = p.Phone
	res, err := a.svc.Update(r.Context(), d)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !res.Success {
		envelope.Failure(w, r, "update failure")
		return
	}

	a.publish(r.Context(), messages.ActionUpdated, d)
	envelope.Success(w, r, envelope.Message{Message: "update success"})
}

func (a *ShippersAPI) delete(w http.ResponseWriter, r *http.Request) {
	var p idParameter
	if !a.decode(w, r, &p) {
		return
	}

	exists, err := a.svc.Exists(r.Context(), p.ShipperID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !exists {
		envelope.Failure(w, r, "shipper not exists")
		return
	}

	res, err := a.svc.Delete(r.Context(), p.ShipperID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !res.Success {
		envelope.Failure(w, r, "delete failure")
		return
	}

	a.publish(r.Context(), messages.ActionDeleted, &shippers.ShipperDTO{ShipperID: p.ShipperID})
	envelope.Success(w, r, envelope.Message{Message: "delete success"})
}

func (a *ShippersAPI) writeError(w http.ResponseWriter, r *http.Request, err error) {
	envelope.Error(w, r, a.log, a.debug, err)
}

// decode reads a JSON body into dst and validates it; on failure the response is already written.
func (a *ShippersAPI) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		envelope.Violations(w, r, []validation.Violation{{Field: "body", Message: "invalid json: " + err.Error()}})
		return false
	}
	if bad := a.validator.Violations(dst); len(bad) > 0 {
		envelope.Violations(w, r, bad)
		return false
	}
	return true
}

// publish is best effort: the mutation already happened, so errors are only logged.
func (a *ShippersAPI) publish(ctx context.Context, action string, d *shippers.ShipperDTO) {
	if a.publisher == nil {
		return
	}
	ev := messages.ShipperChanged{
		Action:      action,
		ShipperID:   d.ShipperID,
		CompanyName: d.CompanyName,
		Phone:       d.Phone,
		OccurredAt:  a.clock.Now(),
	}
	if err := a.publisher.PublishJSON(ctx, a.topic, strconv.Itoa(d.ShipperID), ev); err != nil {
		a.log.Warn("publish shipper changed", "action", action, "shipper_id", d.ShipperID, "error", err.Error())
	}
}
