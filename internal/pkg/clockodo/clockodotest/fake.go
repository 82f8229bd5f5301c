// Package clockodotest provides an in-memory clockodo.Client for service tests.
package clockodotest

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
)

var _ clockodo.Client = (*FakeClient)(nil)

// Call is one recorded client invocation.
type Call struct {
	Method string
	Family clockodo.Family
	ID     int
	Params clockodo.Params
	Body   map[string]any
}

// FakeClient answers from canned envelopes keyed by family. Mutations echo
// their body under the family's singular key unless a response is set.
type FakeClient struct {
	User string

	mu        sync.Mutex
	fetch     map[clockodo.Family]clockodo.Envelope
	responses map[string]clockodo.Envelope
	errs      map[string]error
	holds     map[clockodo.Family]*hold
	calls     []Call
}

type hold struct {
	started chan struct{}
	once    sync.Once
	release chan struct{}
}

func NewFakeClient(apiUser string) *FakeClient {
	return &FakeClient{
		User:      apiUser,
		fetch:     map[clockodo.Family]clockodo.Envelope{},
		responses: map[string]clockodo.Envelope{},
		errs:      map[string]error{},
		holds:     map[clockodo.Family]*hold{},
	}
}

// OnFetch sets the envelope returned by Fetch for family.
func (f *FakeClient) OnFetch(family clockodo.Family, env clockodo.Envelope) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetch[family] = env
	return f
}

// OnMutation sets the envelope returned by method ("POST", "PUT", "DELETE")
// on family.
func (f *FakeClient) OnMutation(method string, family clockodo.Family, env clockodo.Envelope) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key(method, family)] = env
	return f
}

// Fail makes method on family return err.
func (f *FakeClient) Fail(method string, family clockodo.Family, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key(method, family)] = err
	return f
}

// Hold makes Fetch on family block until release is called or the caller's
// context ends. started is closed when the first Fetch begins waiting.
func (f *FakeClient) Hold(family clockodo.Family) (started <-chan struct{}, release func()) {
	h := &hold{started: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.holds[family] = h
	f.mu.Unlock()

	var once sync.Once
	return h.started, func() { once.Do(func() { close(h.release) }) }
}

// Calls returns a copy of every recorded invocation.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount counts invocations of method on family. An empty method matches
// any method.
func (f *FakeClient) CallCount(method string, family clockodo.Family) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Family == family && (method == "" || c.Method == method) {
			n++
		}
	}
	return n
}

// LastCall returns the most recent invocation of method on family.
func (f *FakeClient) LastCall(method string, family clockodo.Family) (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		c := f.calls[i]
		if c.Family == family && c.Method == method {
			return c, true
		}
	}
	return Call{}, false
}

func (f *FakeClient) APIUser() string {
	return f.User
}

func (f *FakeClient) Fetch(ctx context.Context, family clockodo.Family, params clockodo.Params) (clockodo.Envelope, error) {
	if err := f.record(ctx, Call{Method: "GET", Family: family, Params: params}); err != nil {
		return nil, err
	}

	f.mu.Lock()
	h := f.holds[family]
	f.mu.Unlock()
	if h != nil {
		h.once.Do(func() { close(h.started) })
		select {
		case <-h.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	env, ok := f.fetch[family]
	if !ok {
		if family.IsCollection() {
			return clockodo.Envelope{family.PluralKey(): []any{}}, nil
		}
		return clockodo.Envelope{}, nil
	}
	return env, nil
}

func (f *FakeClient) Create(ctx context.Context, family clockodo.Family, body map[string]any) (clockodo.Envelope, error) {
	return f.mutate(ctx, Call{Method: "POST", Family: family, Body: body})
}

func (f *FakeClient) Update(ctx context.Context, family clockodo.Family, id int, body map[string]any) (clockodo.Envelope, error) {
	return f.mutate(ctx, Call{Method: "PUT", Family: family, ID: id, Body: body})
}

func (f *FakeClient) Delete(ctx context.Context, family clockodo.Family, id int) (clockodo.Envelope, error) {
	return f.mutate(ctx, Call{Method: "DELETE", Family: family, ID: id})
}

func (f *FakeClient) mutate(ctx context.Context, call Call) (clockodo.Envelope, error) {
	if err := f.record(ctx, call); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if env, ok := f.responses[key(call.Method, call.Family)]; ok {
		return env, nil
	}

	echo := map[string]any{}
	for k, v := range call.Body {
		echo[k] = v
	}
	if call.ID != 0 {
		echo["id"] = float64(call.ID)
	}
	return clockodo.Envelope{call.Family.SingularKey(): echo}, nil
}

func (f *FakeClient) record(ctx context.Context, call Call) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.errs[key(call.Method, call.Family)]
}

func key(method string, family clockodo.Family) string {
	return method + " " + string(family)
}
