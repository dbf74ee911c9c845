package visit

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-calypso/internal/bootstrap"
	"go-calypso/internal/category"
	"go-calypso/internal/events"
	"go-calypso/internal/messaging/kafka"
	"go-calypso/internal/shared/contextutil"
	"go-calypso/internal/shared/validation"
	visiterrors "go-calypso/internal/visit/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=visit_service.go -destination=mock/visit_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterVisitRequest) (VisitResponse, error)
	SelfRegister(ctx context.Context, req SelfRegisterVisitRequest) (VisitResponse, error)
	Approve(ctx context.Context, id, hostID string) (VisitResponse, error)
	MarkExit(ctx context.Context, id string) (VisitResponse, error)
	List(ctx context.Context, q ListQuery) ([]VisitResponse, error)
	GetByID(ctx context.Context, id string) (VisitResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	suggester category.Suggester
	audit     bootstrap.AuditLogger
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires the lifecycle engine. A nil outbox disables lifecycle
// events and a nil suggester disables category auto-fill.
func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	suggester category.Suggester,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("visit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visit.service")
	}
	if suggester == nil {
		suggester = category.Noop{}
	}
	if audit == nil {
		audit = bootstrap.NoopAuditLogger()
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		suggester: suggester,
		audit:     audit,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

// Register records a staff-assisted check-in. The visit starts active with
// its host set. Repeated visitors are not deduplicated.
func (s *service) Register(ctx context.Context, req RegisterVisitRequest) (VisitResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register visit requested",
		zap.String("request_id", rid),
		zap.String("branch_id", req.BranchID),
		zap.String("host_id", req.HostID),
	)

	hostID, err := uuid.Parse(req.HostID)
	if err != nil {
		return VisitResponse{}, visiterrors.ErrInvalidHostID
	}
	v, err := s.newVisit(ctx, req.VisitorProfile)
	if err != nil {
		s.logger.Warn("register visit invalid input", zap.String("request_id", rid), zap.Error(err))
		return VisitResponse{}, err
	}
	v.HostID = &hostID
	v.Estado = EstadoActiva

	if err := s.create(ctx, v, events.VisitRegistered); err != nil {
		return VisitResponse{}, err
	}

	s.logger.Info("register visit success",
		zap.String("request_id", rid),
		zap.String("visit_id", v.ID.String()),
		zap.String("estado", v.Estado),
	)
	return mapToResponse(*v), nil
}

// SelfRegister records a visitor's own request; staff must approve it
// before the visit counts as active.
func (s *service) SelfRegister(ctx context.Context, req SelfRegisterVisitRequest) (VisitResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("self-register visit requested",
		zap.String("request_id", rid),
		zap.String("branch_id", req.BranchID),
	)

	v, err := s.newVisit(ctx, req.VisitorProfile)
	if err != nil {
		s.logger.Warn("self-register visit invalid input", zap.String("request_id", rid), zap.Error(err))
		return VisitResponse{}, err
	}
	v.HostID = nil
	v.Estado = EstadoPendiente

	if err := s.create(ctx, v, events.VisitSelfRegistered); err != nil {
		return VisitResponse{}, err
	}

	s.logger.Info("self-register visit success",
		zap.String("request_id", rid),
		zap.String("visit_id", v.ID.String()),
	)
	return mapToResponse(*v), nil
}

func (s *service) create(ctx context.Context, v *Visit, eventType string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create visit begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if v.HostID != nil {
		ok, err := qtx.EmployeeExists(ctx, v.HostID.String())
		if err != nil {
			return err
		}
		if !ok {
			return visiterrors.ErrHostNotFound
		}
	}
	ok, err := qtx.BranchExists(ctx, v.BranchID.String())
	if err != nil {
		return err
	}
	if !ok {
		return visiterrors.ErrBranchNotFound
	}

	if err := qtx.Create(ctx, v); err != nil {
		s.logger.Error("create visit persist failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := s.writeEvent(ctx, tx, eventType, v); err != nil {
		s.logger.Error("create visit outbox failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create visit commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	return nil
}

// Approve activates a pending visit with the given host. The update is
// conditional on the visit still being pending, so approving twice fails.
func (s *service) Approve(ctx context.Context, id, hostID string) (VisitResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve visit requested",
		zap.String("request_id", rid),
		zap.String("visit_id", id),
		zap.String("host_id", hostID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return VisitResponse{}, visiterrors.ErrInvalidVisitID
	}
	hostUUID, err := uuid.Parse(hostID)
	if err != nil {
		return VisitResponse{}, visiterrors.ErrInvalidHostID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve visit begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return VisitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.EmployeeExists(ctx, hostID)
	if err != nil {
		return VisitResponse{}, err
	}
	if !ok {
		return VisitResponse{}, visiterrors.ErrHostNotFound
	}

	n, err := qtx.Approve(ctx, id, hostUUID, s.now())
	if err != nil {
		s.logger.Error("approve visit persist failed", zap.String("visit_id", id), zap.Error(err))
		return VisitResponse{}, err
	}
	if n == 0 {
		return VisitResponse{}, s.transitionError(ctx, qtx, id, EstadoActiva)
	}

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VisitResponse{}, mapRepositoryError(err)
	}
	if err := s.writeEvent(ctx, tx, events.VisitApproved, v); err != nil {
		s.logger.Error("approve visit outbox failed", zap.String("visit_id", id), zap.Error(err))
		return VisitResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve visit commit failed", zap.String("visit_id", id), zap.Error(err))
		return VisitResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  bootstrap.AuditVisitApproved,
		Message: "self-registered visit approved",
		Meta: map[string]any{
			"visit_id": id,
			"host_id":  hostID,
		},
	})
	s.logger.Info("approve visit success",
		zap.String("request_id", rid),
		zap.String("visit_id", id),
		zap.String("host_id", hostID),
	)
	return mapToResponse(*v), nil
}

// MarkExit finalizes an active visit. Only the first of several calls
// succeeds; later ones see a conflict and the exit time is kept.
func (s *service) MarkExit(ctx context.Context, id string) (VisitResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return VisitResponse{}, visiterrors.ErrInvalidVisitID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark exit begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return VisitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.MarkExit(ctx, id, s.now())
	if err != nil {
		s.logger.Error("mark exit persist failed", zap.String("visit_id", id), zap.Error(err))
		return VisitResponse{}, err
	}
	if n == 0 {
		return VisitResponse{}, s.transitionError(ctx, qtx, id, EstadoFinalizada)
	}

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VisitResponse{}, mapRepositoryError(err)
	}
	if err := s.writeEvent(ctx, tx, events.VisitExited, v); err != nil {
		s.logger.Error("mark exit outbox failed", zap.String("visit_id", id), zap.Error(err))
		return VisitResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark exit commit failed", zap.String("visit_id", id), zap.Error(err))
		return VisitResponse{}, err
	}

	s.logger.Info("mark exit success", zap.String("request_id", rid), zap.String("visit_id", id))
	return mapToResponse(*v), nil
}

// transitionError explains why a conditional update touched no row.
func (s *service) transitionError(ctx context.Context, repo Repository, id, target string) error {
	v, err := repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Warn("visit transition rejected",
		zap.String("visit_id", id),
		zap.String("from_estado", v.Estado),
		zap.String("to_estado", target),
	)
	switch {
	case target == EstadoActiva:
		return visiterrors.ErrVisitNotPending
	case v.Estado == EstadoFinalizada || v.ExitTime != nil:
		return visiterrors.ErrVisitAlreadyExited
	case !isAllowedTransition(v.Estado, target):
		return visiterrors.ErrVisitNotActive
	default:
		// the row changed between the update and this read
		return visiterrors.ErrVisitAlreadyExited
	}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]VisitResponse, error) {
	f, err := parseListQuery(q)
	if err != nil {
		return nil, err
	}

	visits, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("list visits failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(visits), nil
}

func (s *service) GetByID(ctx context.Context, id string) (VisitResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VisitResponse{}, visiterrors.ErrInvalidVisitID
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VisitResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

// newVisit builds the common part of a visit from the intake form and asks
// for a category when the form left it empty.
func (s *service) newVisit(ctx context.Context, p VisitorProfile) (*Visit, error) {
	branchID, err := uuid.Parse(p.BranchID)
	if err != nil {
		return nil, visiterrors.ErrInvalidBranchID
	}
	birth, err := time.Parse(validation.DateLayout, strings.TrimSpace(p.BirthDate))
	if err != nil || !birth.Before(s.now()) {
		return nil, visiterrors.ErrInvalidBirthDate
	}

	now := s.now()
	v := &Visit{
		ID:                      uuid.New(),
		DocumentType:            strings.TrimSpace(p.DocumentType),
		DocumentNumber:          strings.TrimSpace(p.DocumentNumber),
		FirstNames:              strings.TrimSpace(p.FirstNames),
		LastNames:               strings.TrimSpace(p.LastNames),
		BirthDate:               birth,
		Gender:                  strings.TrimSpace(p.Gender),
		BloodType:               strings.TrimSpace(p.BloodType),
		Phone:                   strings.TrimSpace(p.Phone),
		Purpose:                 strings.TrimSpace(p.Purpose),
		Category:                strings.TrimSpace(p.Category),
		VisitType:               strings.TrimSpace(p.VisitType),
		BranchID:                branchID,
		OriginCompany:           optional(p.OriginCompany),
		BadgeNumber:             optional(p.BadgeNumber),
		VehiclePlate:            optional(strings.ToUpper(p.VehiclePlate)),
		EPS:                     strings.TrimSpace(p.EPS),
		ARL:                     strings.TrimSpace(p.ARL),
		EmergencyContactName:    strings.TrimSpace(p.EmergencyContactName),
		EmergencyContactPhone:   strings.TrimSpace(p.EmergencyContactPhone),
		EmergencyContactKinship: strings.TrimSpace(p.EmergencyContactKinship),
		PhotoPath:               optional(p.PhotoPath),
		EntryTime:               now,
		CreatedAt:               now,
	}

	if v.Category == "" {
		if label, ok := s.suggester.Suggest(ctx, v.Purpose); ok {
			v.Category = label
			s.logger.Debug("visit category suggested", zap.String("category", label))
		}
	}
	return v, nil
}

func (s *service) writeEvent(ctx context.Context, tx *sql.Tx, eventType string, v *Visit) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload := events.VisitLifecycleEvent{
		EventType:      eventType,
		RequestID:      rid,
		VisitID:        v.ID.String(),
		BranchID:       v.BranchID.String(),
		Estado:         v.Estado,
		VisitorName:    v.VisitorName(),
		DocumentNumber: v.DocumentNumber,
		Purpose:        v.Purpose,
		OccurredAt:     s.now(),
	}
	if v.HostID != nil {
		payload.HostID = v.HostID.String()
	}

	event, err := kafka.NewOutboxEvent(rid, events.AggregateVisit, v.ID.String(), eventType, events.VisitLifecycleTopic, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func parseListQuery(q ListQuery) (ListFilter, error) {
	f := ListFilter{
		Estado: strings.TrimSpace(q.Estado),
		Search: strings.TrimSpace(q.Search),
	}
	if f.Estado != "" && !isKnownEstado(f.Estado) {
		return ListFilter{}, visiterrors.ErrInvalidEstado
	}

	if q.From != "" {
		from, err := time.Parse(validation.DateLayout, q.From)
		if err != nil {
			return ListFilter{}, visiterrors.ErrInvalidDateFilter
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(validation.DateLayout, q.To)
		if err != nil {
			return ListFilter{}, visiterrors.ErrInvalidDateFilter
		}
		// inclusive end of day
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return ListFilter{}, visiterrors.ErrInvalidDateRange
	}
	return f, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func mapToResponse(v Visit) VisitResponse {
	var hostID *string
	if v.HostID != nil {
		h := v.HostID.String()
		hostID = &h
	}
	return VisitResponse{
		ID:                      v.ID.String(),
		DocumentType:            v.DocumentType,
		DocumentNumber:          v.DocumentNumber,
		FirstNames:              v.FirstNames,
		LastNames:               v.LastNames,
		BirthDate:               v.BirthDate.Format(validation.DateLayout),
		Gender:                  v.Gender,
		BloodType:               v.BloodType,
		Phone:                   v.Phone,
		Purpose:                 v.Purpose,
		Category:                v.Category,
		VisitType:               v.VisitType,
		HostID:                  hostID,
		BranchID:                v.BranchID.String(),
		OriginCompany:           v.OriginCompany,
		BadgeNumber:             v.BadgeNumber,
		VehiclePlate:            v.VehiclePlate,
		EPS:                     v.EPS,
		ARL:                     v.ARL,
		EmergencyContactName:    v.EmergencyContactName,
		EmergencyContactPhone:   v.EmergencyContactPhone,
		EmergencyContactKinship: v.EmergencyContactKinship,
		PhotoPath:               v.PhotoPath,
		Estado:                  v.Estado,
		EntryTime:               v.EntryTime.UTC().Format(time.RFC3339),
		ExitTime:                formatTime(v.ExitTime),
		RequestDate:             v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(visits []Visit) []VisitResponse {
	resp := make([]VisitResponse, len(visits))
	for i, v := range visits {
		resp[i] = mapToResponse(v)
	}
	return resp
}
