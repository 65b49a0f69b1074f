package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storepulse/storeops-backend-go/internal/config"
	"github.com/storepulse/storeops-backend-go/internal/domain/attendance"
	"github.com/storepulse/storeops-backend-go/internal/domain/employee"
	"github.com/storepulse/storeops-backend-go/internal/domain/location"
	"github.com/storepulse/storeops-backend-go/internal/domain/schedule"
	"github.com/storepulse/storeops-backend-go/internal/pkg/clock"
	"github.com/storepulse/storeops-backend-go/internal/pkg/geo"
	"github.com/storepulse/storeops-backend-go/internal/pkg/validator"
)

type RecorderImpl struct {
	eventRepo    attendance.EventRepository
	employeeRepo employee.EmployeeRepository
	locationRepo location.LocationRepository
	resolver     schedule.Resolver
	calendar     clock.Calendar
	clk          clock.Clock
	cfg          config.AttendanceConfig
}

func NewRecorder(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	resolver schedule.Resolver,
	calendar clock.Calendar,
	clk clock.Clock,
	cfg config.AttendanceConfig,
) *RecorderImpl {
	return &RecorderImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		locationRepo: locationRepo,
		resolver:     resolver,
		calendar:     calendar,
		clk:          clk,
		cfg:          cfg,
	}
}

// Submit implements attendance.Recorder.
func (r *RecorderImpl) Submit(ctx context.Context, req attendance.SubmitEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	if req.ActorRole == "manager" && req.ActorStoreID != "" && req.ActorStoreID != req.StoreID {
		return attendance.EventResponse{}, attendance.ErrStoreScope
	}

	now := r.clk.Now()
	today := r.calendar.DateOf(now)
	eventType := attendance.EventType(req.Type)

	emp, err := r.employeeRepo.GetByID(ctx, req.StoreID, req.EmployeeID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	event := attendance.Event{
		ID:            uuid.NewString(),
		StoreID:       req.StoreID,
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		Type:          eventType,
		OccurredAt:    now,
		Date:          today,
		Status:        attendance.StatusNormal,
		ApprovalState: attendance.ApprovalPending,
	}

	r.applyGeofence(ctx, &event, req)

	shift, err := r.resolver.Resolve(ctx, req.StoreID, emp.ID, today, eventType == attendance.EventClockIn)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	if err := r.deriveTiming(ctx, &event, shift, now, today); err != nil {
		return attendance.EventResponse{}, err
	}

	inserted, err := r.eventRepo.InsertOnce(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to append attendance event: %w", err)
	}
	if !inserted {
		return attendance.EventResponse{}, attendance.ErrDuplicateEvent
	}

	return mapEventToResponse(event), nil
}

// applyGeofence records the GPS compliance flag. Distance never blocks the
// event; manager-approval gating is computed here but disabled.
func (r *RecorderImpl) applyGeofence(ctx context.Context, event *attendance.Event, req attendance.SubmitEventRequest) {
	lat, _ := validator.ParseLatitude(req.Latitude)
	lng, _ := validator.ParseLongitude(req.Longitude)
	event.Latitude = lat
	event.Longitude = lng

	if lat == nil || lng == nil {
		return
	}

	ref, err := r.locationRepo.GetStoreReference(ctx, req.StoreID)
	if err != nil {
		// The compliance flag is observability only; a missing or failed
		// reference lookup must not reject the clock event.
		if !errors.Is(err, location.ErrLocationNotFound) {
			slog.Warn("geofence reference lookup failed", "store_id", req.StoreID, "error", err)
		}
		return
	}
	if !ref.HasCoordinates() {
		return
	}

	distance := geo.Distance(ref.Latitude, ref.Longitude, *lat, *lng)
	compliant := distance <= r.cfg.GeofenceRadiusMeters
	event.GeofenceDistanceM = &distance
	event.GeofenceCompliant = &compliant
}

func (r *RecorderImpl) deriveTiming(ctx context.Context, event *attendance.Event, shift schedule.Shift, now time.Time, today clock.Date) error {
	planIn := shift.PlanIn
	if planIn == "" {
		planIn = r.cfg.DefaultClockIn
	}
	planOut := shift.PlanOut
	if planOut == "" {
		planOut = r.cfg.DefaultClockOut
	}

	switch event.Type {
	case attendance.EventClockIn:
		plannedIn, err := today.At(planIn)
		if err != nil {
			return err
		}
		if now.After(plannedIn) {
			event.LateMinutes = wholeMinutes(now.Sub(plannedIn))
		}
		// A single minute of slack is tolerated before the label flips.
		if event.LateMinutes > 1 {
			event.Status = attendance.StatusLate
		}

	case attendance.EventClockOut:
		plannedOut, err := today.At(planOut)
		if err != nil {
			return err
		}
		if now.Before(plannedOut) {
			event.EarlyMinutes = wholeMinutes(plannedOut.Sub(now))
			event.Status = attendance.StatusEarlyLeave
		} else {
			event.OvertimeMinutes = wholeMinutes(now.Sub(plannedOut))
			if event.OvertimeMinutes >= 30 {
				event.Status = attendance.StatusOvertime
			}
		}

	case attendance.EventBreakEnd:
		event.Status = attendance.StatusBreakNormal
		started, err := r.eventRepo.LatestBreakStart(ctx, event.EmployeeID, today)
		if err != nil {
			return fmt.Errorf("failed to find break start: %w", err)
		}
		if started == nil {
			return nil
		}
		event.BreakMinutes = wholeMinutes(now.Sub(started.OccurredAt))
		if shift.HasBreakWindow() {
			from, err := today.At(shift.BreakStart)
			if err != nil {
				return err
			}
			to, err := today.At(shift.BreakEnd)
			if err != nil {
				return err
			}
			if event.BreakMinutes > wholeMinutes(to.Sub(from)) {
				event.Status = attendance.StatusBreakOverrun
			}
		}

	case attendance.EventBreakStart:
		// No derived timing beyond echoing the planned window.

	default:
		return attendance.ErrUnknownEventType
	}

	return nil
}

func wholeMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:                ev.ID,
		StoreID:           ev.StoreID,
		EmployeeID:        ev.EmployeeID,
		EmployeeName:      ev.EmployeeName,
		Type:              string(ev.Type),
		OccurredAt:        ev.OccurredAt.Format(time.RFC3339),
		Date:              ev.Date.String(),
		LateMinutes:       ev.LateMinutes,
		EarlyMinutes:      ev.EarlyMinutes,
		OvertimeMinutes:   ev.OvertimeMinutes,
		BreakMinutes:      ev.BreakMinutes,
		Status:            ev.Status,
		ApprovalState:     ev.ApprovalState,
		GeofenceDistanceM: ev.GeofenceDistanceM,
		GeofenceCompliant: ev.GeofenceCompliant,
	}
}
