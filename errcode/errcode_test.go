package errcode

import (
	"errors"
	"testing"
)

func TestErrorRendersOpAndCause(t *testing.T) {
	cause := errors.New("bus nak")
	err := Wrap(I2CError, "rtc.Configure", cause)
	if got, want := err.Error(), "i2c_error rtc.Configure: bus nak"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	e := &E{C: InvalidParams, Op: "sched.Arm", Msg: "interval must be within (0, 24h)"}
	if got, want := e.Error(), "invalid_params sched.Arm: interval must be within (0, 24h)"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	bare := &E{C: Timeout}
	if got := bare.Error(); got != "timeout" {
		t.Fatalf("Error() = %q, want %q", got, "timeout")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(I2CError, "op", nil) != nil {
		t.Fatal("Wrap(nil cause) must be nil")
	}
	cause := errors.New("stuck")
	err := Wrap(ADCError, "battery.Read", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause must stay reachable through Unwrap")
	}
	if Of(err) != ADCError {
		t.Fatalf("Of = %v, want ADCError", Of(err))
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("Of(nil) must be OK")
	}
	if Of(InitFailed) != InitFailed {
		t.Fatal("bare Code must pass through")
	}
	if Of(errors.New("opaque")) != Error {
		t.Fatal("unknown errors map to the generic code")
	}
}
