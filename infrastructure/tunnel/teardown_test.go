package tunnel

import (
	"context"
	"errors"
	"testing"

	"fortivpn/application"
)

type capturingLogger struct{ lines []string }

func (l *capturingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, format)
}

func TestTeardown_ClosesThenLogsOut(t *testing.T) {
	tr := &fakeTransport{}
	http := &fakeHTTP{status: 200, cookies: map[string]string{}}
	log := &capturingLogger{}

	Teardown(context.Background(), tr, func() (application.HTTPClient, error) {
		return http, nil
	}, log)

	if !tr.closed {
		t.Fatal("expected transport closed")
	}
	if len(http.reqs) != 1 || http.reqs[0] != "GET remote/logout" {
		t.Fatalf("expected a single logout request, got %v", http.reqs)
	}
	if len(log.lines) != 0 {
		t.Fatalf("expected no logged errors on success, got %v", log.lines)
	}
}

func TestTeardown_LogsOutFailureWithoutPanicking(t *testing.T) {
	tr := &fakeTransport{}
	log := &capturingLogger{}

	Teardown(context.Background(), tr, func() (application.HTTPClient, error) {
		return nil, errors.New("dial failed")
	}, log)

	if !tr.closed {
		t.Fatal("expected transport closed even when logout fails")
	}
	if len(log.lines) != 1 {
		t.Fatalf("expected exactly one logged failure, got %v", log.lines)
	}
}
