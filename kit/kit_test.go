package kit

import (
	"context"
	"errors"
	"testing"
)

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				order = append(order, name+"_before")
				resp, err := next(ctx, req)
				order = append(order, name+"_after")
				return resp, err
			}
		}
	}

	base := func(_ context.Context, _ any) (any, error) {
		order = append(order, "endpoint")
		return "ok", nil
	}

	chained := Chain(mw("a"), mw("b"), mw("c"))(base)
	resp, err := chained(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp != "ok" {
		t.Fatalf("response: got %v", resp)
	}

	expected := []string{"a_before", "b_before", "c_before", "endpoint", "c_after", "b_after", "a_after"}
	if len(order) != len(expected) {
		t.Fatalf("order length: got %d, want %d", len(order), len(expected))
	}
	for i, v := range expected {
		if order[i] != v {
			t.Fatalf("order[%d]: got %q, want %q", i, order[i], v)
		}
	}
}

func TestChain_ErrorPropagation(t *testing.T) {
	errFail := errors.New("fail")
	base := func(_ context.Context, _ any) (any, error) {
		return nil, errFail
	}

	noop := func(next Endpoint) Endpoint { return next }
	chained := Chain(noop)(base)

	_, err := chained(context.Background(), nil)
	if !errors.Is(err, errFail) {
		t.Fatalf("error: got %v, want %v", err, errFail)
	}
}

func TestContext_Transport(t *testing.T) {
	if v := GetTransport(context.Background()); v != "stdio" {
		t.Fatalf("default transport: got %q", v)
	}
	ctx := WithTransport(context.Background(), "mcp_quic")
	if v := GetTransport(ctx); v != "mcp_quic" {
		t.Fatalf("after set: got %q", v)
	}
}

func TestContext_SessionAndRemote(t *testing.T) {
	ctx := WithSessionID(context.Background(), "quic_ab12cd34")
	ctx = WithRemoteAddr(ctx, "10.0.0.7:9444")
	if v := GetSessionID(ctx); v != "quic_ab12cd34" {
		t.Fatalf("session: got %q", v)
	}
	if v := GetRemoteAddr(ctx); v != "10.0.0.7:9444" {
		t.Fatalf("remote: got %q", v)
	}
	if v := GetRequestID(ctx); v != "" {
		t.Fatalf("request id on empty context: got %q", v)
	}
}
