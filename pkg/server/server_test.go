package server

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/symserve/symserve/pkg/config"
	"github.com/symserve/symserve/pkg/engine"
)

func buildEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := config.DefaultConfig().Engine
	cfg.CountThreshold = 1
	eng, err := engine.New(cfg, nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	eng.AddEntry("members", 226656153)
	return eng
}

// roundTrip sends one request and decodes the server's reply plus the
// preceding "ready" status it always emits at Start.
func roundTrip(t *testing.T, eng *engine.Engine, req Request) *msgpack.Decoder {
	t.Helper()
	var in bytes.Buffer
	if err := msgpack.NewEncoder(&in).Encode(req); err != nil {
		t.Fatalf("encode request: %v", err)
	}

	var out bytes.Buffer
	s := NewServerIO(eng, &in, &out)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decode ready status: %v", err)
	}
	if ready.Status != "ready" {
		t.Fatalf("ready.Status = %q, want ready", ready.Status)
	}
	return dec
}

func TestServerLookup(t *testing.T) {
	eng := buildEngine(t)
	dec := roundTrip(t, eng, Request{
		ID:              "req_1",
		Command:         "lookup",
		Term:            "memebers",
		MaxEditDistance: 2,
		Verbosity:       "CLOSEST",
	})

	var resp LookupResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode LookupResponse: %v", err)
	}
	if resp.ID != "req_1" || resp.Count != 1 {
		t.Fatalf("resp = %+v, want ID req_1 and count 1", resp)
	}
	if resp.Suggestions[0].Term != "members" || resp.Suggestions[0].Distance != 1 {
		t.Fatalf("resp.Suggestions[0] = %+v, want (members, distance 1)", resp.Suggestions[0])
	}
}

func TestServerUnknownCommand(t *testing.T) {
	eng := buildEngine(t)
	dec := roundTrip(t, eng, Request{ID: "req_2", Command: "bogus"})

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode ErrorResponse: %v", err)
	}
	if resp.Code != 400 || resp.ID != "req_2" {
		t.Fatalf("resp = %+v, want code 400 and ID req_2", resp)
	}
}

func TestServerHealth(t *testing.T) {
	eng := buildEngine(t)
	dec := roundTrip(t, eng, Request{ID: "req_3", Command: "health"})

	var resp StatusResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode StatusResponse: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("resp.Status = %q, want ok", resp.Status)
	}
}
