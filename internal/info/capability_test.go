package info

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/models"
)

type fakeVoice struct {
	lastRole models.Role
	said     []string
}

func (v *fakeVoice) LastRole() models.Role { return v.lastRole }
func (v *fakeVoice) Say(_ context.Context, text string, _ bool) error {
	v.said = append(v.said, text)
	return nil
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCompanyInfoCapability(t *testing.T) {
	voice := &fakeVoice{}
	capability := CompanyInfoCapability(voice, testLogger())

	if capability.Name != "get_company_info" {
		t.Errorf("capability name = %q", capability.Name)
	}

	out, err := capability.Handler(context.Background(), json.RawMessage(`{"topic":"the Tarot book!"}`))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !strings.Contains(out, "Fortunes Told") {
		t.Errorf("expected fortunes told info, got %q", out)
	}
	if len(voice.said) != 1 {
		t.Fatalf("expected one filler utterance, got %d", len(voice.said))
	}
	if !strings.Contains(voice.said[0], "the tarot book") {
		t.Errorf("filler %q does not mention normalized topic", voice.said[0])
	}
}

func TestCompanyInfoCapability_NoFillerAfterAssistant(t *testing.T) {
	voice := &fakeVoice{lastRole: models.RoleAssistant}
	capability := CompanyInfoCapability(voice, testLogger())

	if _, err := capability.Handler(context.Background(), json.RawMessage(`{"topic":"contact"}`)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(voice.said) != 0 {
		t.Errorf("expected no filler after an assistant turn, got %v", voice.said)
	}
}

func TestCompanyInfoCapability_BadArguments(t *testing.T) {
	capability := CompanyInfoCapability(&fakeVoice{}, testLogger())
	if _, err := capability.Handler(context.Background(), json.RawMessage(`{not json`)); err == nil {
		t.Error("expected error for malformed arguments")
	}
}
