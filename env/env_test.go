package env

import (
	"reflect"
	"testing"
)

func TestMapToSlice(t *testing.T) {
	got := MapToSlice(map[string]string{
		"SAM_CLI_TELEMETRY": "0",
		"AWS_REGION":        "us-west-2",
	})
	want := []string{"AWS_REGION=us-west-2", "SAM_CLI_TELEMETRY=0"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapToSlice() = %v, want %v", got, want)
	}
}

func TestMapToSliceEmpty(t *testing.T) {
	if got := MapToSlice(nil); got != nil {
		t.Errorf("MapToSlice(nil) = %v, want nil", got)
	}
}

func TestSliceToMap(t *testing.T) {
	got := SliceToMap([]string{
		"AWS_REGION=us-west-2",
		"EMPTY=",
		"VALUE_WITH_EQUALS=a=b",
		"malformed",
		"=nokey",
	})
	want := map[string]string{
		"AWS_REGION":        "us-west-2",
		"EMPTY":             "",
		"VALUE_WITH_EQUALS": "a=b",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceToMap() = %v, want %v", got, want)
	}
}

func TestSliceToMapDuplicatesLastWins(t *testing.T) {
	got := SliceToMap([]string{"KEY=first", "KEY=second"})
	if got["KEY"] != "second" {
		t.Errorf("SliceToMap() duplicate = %q, want %q", got["KEY"], "second")
	}
}

func TestOverlay(t *testing.T) {
	base := []string{"AWS_REGION=us-west-2", "SAM_CLI_TELEMETRY=1"}
	got := Overlay(base, map[string]string{"SAM_CLI_TELEMETRY": "0"})

	m := SliceToMap(got)
	if m["SAM_CLI_TELEMETRY"] != "0" {
		t.Errorf("Overlay() SAM_CLI_TELEMETRY = %q, want %q", m["SAM_CLI_TELEMETRY"], "0")
	}
	if m["AWS_REGION"] != "us-west-2" {
		t.Errorf("Overlay() AWS_REGION = %q, want %q", m["AWS_REGION"], "us-west-2")
	}

	// base untouched
	if base[1] != "SAM_CLI_TELEMETRY=1" {
		t.Error("Overlay() modified its input")
	}
}

func TestOverlayNoOverrides(t *testing.T) {
	base := []string{"A=1", "B=2"}
	got := Overlay(base, nil)
	if !reflect.DeepEqual(got, base) {
		t.Errorf("Overlay() = %v, want %v", got, base)
	}
}

func TestFilterByPrefix(t *testing.T) {
	got := FilterByPrefix(map[string]string{
		"AWS_REGION":  "us-west-2",
		"AWS_PROFILE": "dev",
		"HOME":        "/home/user",
	}, "AWS_")
	want := map[string]string{
		"AWS_REGION":  "us-west-2",
		"AWS_PROFILE": "dev",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterByPrefix() = %v, want %v", got, want)
	}
}
