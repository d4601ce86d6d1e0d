package geo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"
)

func TestDistanceKm_ZeroForEqualPoints(t *testing.T) {
	madrid := Point{Lat: 40.4168, Lon: -3.7038}
	if d := DistanceKm(madrid, madrid); d != 0 {
		t.Errorf("DistanceKm(p, p) = %f, expected 0", d)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	tests := []struct {
		a, b Point
	}{
		{Point{40.4168, -3.7038}, Point{41.3874, 2.1686}},
		{Point{40.0, -3.0}, Point{40.1, -3.0}},
		{Point{-33.45, -70.66}, Point{51.5, -0.12}},
	}

	for _, test := range tests {
		ab := DistanceKm(test.a, test.b)
		ba := DistanceKm(test.b, test.a)
		if ab != ba {
			t.Errorf("DistanceKm(%v, %v) = %f but reversed = %f", test.a, test.b, ab, ba)
		}
		if ab <= 0 {
			t.Errorf("DistanceKm(%v, %v) = %f, expected > 0", test.a, test.b, ab)
		}
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km for
	// R = 6371 km.
	d := DistanceKm(Point{0, 0}, Point{0, 1})
	if math.Abs(d-111.19) > 0.2 {
		t.Errorf("DistanceKm(equator degree) = %f, expected ~111.19", d)
	}
}

func TestDistanceKm_TwoDecimals(t *testing.T) {
	d := DistanceKm(Point{40.4168, -3.7038}, Point{40.4268, -3.7138})
	if d != math.Round(d*100)/100 {
		t.Errorf("DistanceKm = %f, expected 2-decimal rounding", d)
	}
}

type fakeSensor struct {
	point Point
	err   error
	opts  SensorOptions
	calls int
}

func (f *fakeSensor) CurrentPosition(_ context.Context, opts SensorOptions) (Point, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return Point{}, f.err
	}
	return f.point, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

func TestLocator_ResolveSuccess(t *testing.T) {
	sensor := &fakeSensor{point: Point{Lat: 40.4168, Lon: -3.7038}}
	locator := NewLocator(sensor, discardLogger())

	if locator.LastKnown() != nil {
		t.Error("expected no last known location before the first fix")
	}
	if locator.DistanceFromLastKnown(Point{40, -3}) != nil {
		t.Error("expected nil distance before the first fix")
	}

	p, err := locator.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if p != sensor.point {
		t.Errorf("Resolve() = %v, expected %v", p, sensor.point)
	}

	if !sensor.opts.HighAccuracy {
		t.Error("expected a high-accuracy fix request")
	}
	if sensor.opts.Timeout != 10*time.Second {
		t.Errorf("sensor timeout = %v, expected 10s", sensor.opts.Timeout)
	}
	if sensor.opts.MaximumAge != 5*time.Minute {
		t.Errorf("sensor maximum age = %v, expected 5m", sensor.opts.MaximumAge)
	}

	last := locator.LastKnown()
	if last == nil || *last != sensor.point {
		t.Errorf("LastKnown() = %v, expected %v", last, sensor.point)
	}

	d := locator.DistanceFromLastKnown(sensor.point)
	if d == nil || *d != 0 {
		t.Errorf("DistanceFromLastKnown(last) = %v, expected 0", d)
	}
}

func TestLocator_SensorErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind LocationErrorKind
	}{
		{"permission denied", &SensorError{Code: 1}, ErrPermissionDenied},
		{"position unavailable", &SensorError{Code: 2}, ErrPositionUnavailable},
		{"timeout", &SensorError{Code: 3}, ErrTimeout},
		{"unknown code", &SensorError{Code: 42}, ErrPositionUnavailable},
		{"untyped error", errors.New("boom"), ErrPositionUnavailable},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			locator := NewLocator(&fakeSensor{err: test.err}, discardLogger())

			_, err := locator.Resolve(context.Background())
			if err == nil {
				t.Fatal("Resolve() expected an error")
			}
			locErr, ok := err.(*LocationError)
			if !ok {
				t.Fatalf("Resolve() error type %T, expected *LocationError", err)
			}
			if locErr.Kind != test.kind {
				t.Errorf("error kind = %d, expected %d", locErr.Kind, test.kind)
			}
			if locErr.Message == "" {
				t.Error("expected a user-facing message")
			}
			if locator.LastError() == nil {
				t.Error("expected LastError to be set")
			}
			if locator.LastKnown() != nil {
				t.Error("failed fix must not set the last known location")
			}
		})
	}
}

func TestLocator_NilSensorUnsupported(t *testing.T) {
	locator := NewLocator(nil, discardLogger())

	_, err := locator.Resolve(context.Background())
	locErr, ok := err.(*LocationError)
	if !ok || locErr.Kind != ErrUnsupported {
		t.Fatalf("Resolve() = %v, expected ErrUnsupported", err)
	}
}

func TestLocator_LastKnownOverwritten(t *testing.T) {
	sensor := &fakeSensor{point: Point{Lat: 40.0, Lon: -3.0}}
	locator := NewLocator(sensor, discardLogger())

	if _, err := locator.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	sensor.point = Point{Lat: 41.0, Lon: 2.0}
	if _, err := locator.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	last := locator.LastKnown()
	if last == nil || *last != sensor.point {
		t.Errorf("LastKnown() = %v, expected the newer fix %v", last, sensor.point)
	}
}
