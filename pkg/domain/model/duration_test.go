package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect model.Duration
	}{
		{name: "integer hours", input: "4", expect: model.Hours(4)},
		{name: "fractional hours", input: " 0.5 ", expect: model.Hours(0.5)},
		{name: "qualitative", input: "Ongoing (Daily)", expect: model.Qualitative("Ongoing (Daily)")},
		{name: "negative is text", input: "-3", expect: model.Qualitative("-3")},
		{name: "empty", input: "", expect: model.Duration{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, model.ParseDuration(tc.input)).Equal(tc.expect)
		})
	}
}

func TestDurationString(t *testing.T) {
	gt.Value(t, model.Hours(4).String()).Equal("4 hours")
	gt.Value(t, model.Hours(1).String()).Equal("1 hour")
	gt.Value(t, model.Hours(1.5).String()).Equal("1.5 hours")
	gt.Value(t, model.Qualitative("Ongoing").String()).Equal("Ongoing")
	gt.Value(t, model.Duration{}.String()).Equal("N/A")
}

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect model.Duration
		hasErr bool
	}{
		{name: "number", input: `8`, expect: model.Hours(8)},
		{name: "numeric string", input: `"2"`, expect: model.Hours(2)},
		{name: "text string", input: `"As needed"`, expect: model.Qualitative("As needed")},
		{name: "tagged object", input: `{"kind":"text","text":"Weekly"}`, expect: model.Qualitative("Weekly")},
		{name: "null", input: `null`, expect: model.Duration{}},
		{name: "bad kind", input: `{"kind":"days"}`, hasErr: true},
		{name: "bool", input: `true`, hasErr: true},
		{name: "negative number", input: `-5`, hasErr: true},
		{name: "negative hours object", input: `{"kind":"hours","hours":-5}`, hasErr: true},
		{name: "negative numeric string is text", input: `"-5"`, expect: model.Qualitative("-5")},
		{name: "zero hours", input: `0`, expect: model.Hours(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d model.Duration
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.hasErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, d).Equal(tc.expect)
		})
	}
}
