package geo

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sensor error codes as reported by the host position capability.
const (
	SensorCodePermissionDenied    = 1
	SensorCodePositionUnavailable = 2
	SensorCodeTimeout             = 3
)

// LocationErrorKind classifies a failed location fix.
type LocationErrorKind int

const (
	ErrUnsupported LocationErrorKind = iota
	ErrPermissionDenied
	ErrPositionUnavailable
	ErrTimeout
)

// LocationError is the typed failure returned by Locator.Resolve.
type LocationError struct {
	Kind    LocationErrorKind
	Message string
}

func (e *LocationError) Error() string {
	return e.Message
}

// User-facing messages, keyed by sensor error code.
var sensorMessages = map[int]LocationError{
	SensorCodePermissionDenied:    {ErrPermissionDenied, "Permiso de ubicación denegado. Puedes buscarlo manualmente."},
	SensorCodePositionUnavailable: {ErrPositionUnavailable, "No se pudo determinar tu ubicación."},
	SensorCodeTimeout:             {ErrTimeout, "Tiempo de espera agotado al obtener la ubicación."},
}

// SensorError is the raw error surfaced by a Sensor, carrying the host
// error code. Code 0 means the host gave no usable code.
type SensorError struct {
	Code    int
	Message string
}

func (e *SensorError) Error() string {
	return e.Message
}

// SensorOptions tune a single position fix request.
type SensorOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// Sensor abstracts the host's position-sensing capability.
type Sensor interface {
	CurrentPosition(ctx context.Context, opts SensorOptions) (Point, error)
}

const (
	resolveTimeout = 10 * time.Second
	positionMaxAge = 5 * time.Minute
)

// Locator performs best-effort position fixes and remembers the last
// successful one for the lifetime of the process.
type Locator struct {
	sensor Sensor
	log    *slog.Logger

	mu        sync.Mutex
	lastKnown *Point
	locating  bool
	lastErr   *LocationError
}

// NewLocator wraps a sensor. A nil sensor is allowed and makes every
// Resolve fail with ErrUnsupported.
func NewLocator(sensor Sensor, logger *slog.Logger) *Locator {
	return &Locator{sensor: sensor, log: logger}
}

// Resolve requests one position fix from the sensor: high accuracy,
// 10s timeout, cached positions up to 5 minutes old accepted. On
// success the point becomes the locator's last known location.
func (l *Locator) Resolve(ctx context.Context) (Point, error) {
	if l.sensor == nil {
		err := &LocationError{ErrUnsupported, "La geolocalización no está soportada en este dispositivo."}
		l.mu.Lock()
		l.lastErr = err
		l.mu.Unlock()
		return Point{}, err
	}

	l.mu.Lock()
	l.locating = true
	l.lastErr = nil
	l.mu.Unlock()

	p, err := l.sensor.CurrentPosition(ctx, SensorOptions{
		HighAccuracy: true,
		Timeout:      resolveTimeout,
		MaximumAge:   positionMaxAge,
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.locating = false

	if err != nil {
		locErr := mapSensorError(err)
		l.lastErr = locErr
		l.log.Debug("location fix failed", "error", locErr.Message)
		return Point{}, locErr
	}

	l.lastKnown = &p
	l.log.Debug("location resolved", "latitude", p.Lat, "longitude", p.Lon)
	return p, nil
}

func mapSensorError(err error) *LocationError {
	if serr, ok := err.(*SensorError); ok {
		if msg, ok := sensorMessages[serr.Code]; ok {
			e := msg
			return &e
		}
	}
	return &LocationError{ErrPositionUnavailable, "Error desconocido de geolocalización."}
}

// IsLocating reports whether a fix is currently in flight.
func (l *Locator) IsLocating() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locating
}

// LastError returns the failure of the most recent Resolve, or nil.
func (l *Locator) LastError() *LocationError {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// LastKnown returns the most recently resolved position, or nil if no
// fix has ever succeeded.
func (l *Locator) LastKnown() *Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastKnown == nil {
		return nil
	}
	p := *l.lastKnown
	return &p
}

// DistanceFromLastKnown returns the distance in km from the last known
// location to p, or nil when no location has ever resolved.
func (l *Locator) DistanceFromLastKnown(p Point) *float64 {
	last := l.LastKnown()
	if last == nil {
		return nil
	}
	d := DistanceKm(*last, p)
	return &d
}
