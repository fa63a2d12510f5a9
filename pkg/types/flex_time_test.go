package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexTimeDecodesDollarDateWrapper(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`{"$date":"2024-01-15T10:00:00Z"}`), &ft); err != nil {
		t.Fatalf("unmarshal wrapper: %v", err)
	}
	want := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if !ft.Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, ft.Time)
	}
}

func TestFlexTimeDecodesPlainString(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`"2024-03-02T08:30:00Z"`), &ft); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if ft.Time.Day() != 2 || ft.Time.Month() != time.March {
		t.Fatalf("unexpected time %v", ft.Time)
	}
}

func TestFlexTimeDecodesDateOnlyString(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`"2024-06-30"`), &ft); err != nil {
		t.Fatalf("unmarshal date-only: %v", err)
	}
	if ft.Time.Year() != 2024 || ft.Time.Month() != time.June || ft.Time.Day() != 30 {
		t.Fatalf("unexpected time %v", ft.Time)
	}
}

func TestFlexTimeDecodesEpochMillis(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`1705312800000`), &ft); err != nil {
		t.Fatalf("unmarshal millis: %v", err)
	}
	want := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if !ft.Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, ft.Time)
	}
}

func TestFlexTimeNullAndEmpty(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`null`), &ft); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !ft.IsZero() {
		t.Fatal("null should decode to zero time")
	}
	if ptr := ft.TimePtr(); ptr != nil {
		t.Fatal("zero FlexTime should yield nil pointer")
	}

	out, err := json.Marshal(ft)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("expected null, got %s", out)
	}
}

func TestFlexTimeRejectsGarbage(t *testing.T) {
	var ft FlexTime
	if err := json.Unmarshal([]byte(`"not a date"`), &ft); err == nil {
		t.Fatal("expected error for unparseable string")
	}
}
