package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const TransportError = "transport error occurred"

type OperationResult[T any] struct {
	Data T
	Err  error
}

// Return a generic typed error return for a network call.
func GetTransportError[T any]() *OperationResult[T] {
	return NewErrorResult[T](TransportError)
}

func NewErrorResult[T any](err string) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  errors.New(err),
	}
}

// Wrap a generic Data into a OperationResult struct.
func NewSuccessResult[T any](Data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: Data,
		Err:  nil,
	}
}

// FakeFetcher answers GETs from a fixed url table and counts the calls per url.
type FakeFetcher struct {
	mu        sync.Mutex
	responses map[string]*OperationResult[[]byte]
	calls     map[string]int

	// While set, requests wait for it to be closed.
	gate    chan struct{}
	waiting chan string
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		responses: make(map[string]*OperationResult[[]byte]),
		calls:     make(map[string]int),
	}
}

// Set the body returned for a url.
func (f *FakeFetcher) SetBody(url string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = NewSuccessResult(body)
}

// Make the url fail with a transport error.
func (f *FakeFetcher) SetError(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = GetTransportError[[]byte]()
}

// Calls returns how many times a url was requested.
func (f *FakeFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// TotalCalls returns the number of requests done.
func (f *FakeFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, c := range f.calls {
		total += c
	}
	return total
}

// Hold makes every request wait until release is called or its context is done.
// The url of each waiting request is sent on the returned channel.
func (f *FakeFetcher) Hold() (waiting <-chan string, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gate := make(chan struct{})
	f.gate = gate
	f.waiting = make(chan string, 64)

	var once sync.Once
	return f.waiting, func() {
		once.Do(func() {
			f.mu.Lock()
			f.gate = nil
			f.mu.Unlock()
			close(gate)
		})
	}
}

func (f *FakeFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls[url]++
	gate, waiting := f.gate, f.waiting
	f.mu.Unlock()

	if gate != nil {
		select {
		case waiting <- url:
		default:
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, ok := f.responses[url]
	if !ok {
		return nil, fmt.Errorf("unexpected status 404 for %s", url)
	}
	return result.Data, result.Err
}
