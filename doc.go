// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reqcore is the request-execution engine underlying an HTTP
client library. Independent of any specific transport implementation,
it manages the full lifecycle of one outbound HTTP request: acquiring
a transport session, attaching headers, streaming an optional
pull-based request body, capturing response headers and status,
buffering the response body, enforcing a deadline, and exposing the
redirect target.

Create a Request against a session factory to execute an exchange:

	factory := &session.HTTPFactory{}
	target, _ := url.Parse("https://www.example.com")
	req, err := reqcore.New(factory, "GET", target, reqcore.Options{
		Deadline: deadline.In(5 * time.Second),
	})
	...
	err = req.Start()
	...
	buf := make([]byte, 4096)
	for {
		n, err := req.ReadBlock(buf)
		...
		if n == 0 {
			break
		}
	}
	_ = req.EndRequest()

Start drives the transport exchange to full completion before it
returns: the entire response body is buffered inside the Request, so
ReadBlock never blocks and a zero-byte read unambiguously means the
end of the body. Status, headers, and the redirect target are
queryable while a session is active:

	code := req.StatusCode()
	ct, ok := req.AnswerHeader("Content-Type")
	loc, err := req.RedirectedLocation()

To send a request body, attach a content.Source; the engine rewinds it
once per start attempt and the transport pulls from it on demand:

	src := content.NewBytes([]byte(`{"id":123}`))
	req, err := reqcore.New(factory, "POST", target, reqcore.Options{
		Headers: []headerline.Header{{Name: "Content-Type", Value: "application/json"}},
		Source:  src,
	})

To recycle transport sessions across requests, wrap the factory in a
session.Pool and opt in with ReuseSession:

	pool := session.NewPool(&session.HTTPFactory{})
	req, err := reqcore.New(pool, "GET", target, reqcore.Options{
		ReuseSession: true,
	})

To hook into the fine-grained lifecycle points for instrumentation,
install handlers into a HandlerGroup:

	hooks := &reqcore.HandlerGroup{}
	hooks.PushBack(reqcore.AfterStart, reqcore.HandlerFunc(
		func(_ reqcore.Event, r *reqcore.Request) {
			log.Printf("status %d from %d headers", r.StatusCode(), len(r.AnswerHeaders()))
		}))

A Request is one-shot and single-goroutine: it performs no internal
locking, never retries, and once Finished must be discarded rather
than restarted. Retry, redirect following, and connection eviction
policy belong to the layers above and below this engine.
*/
package reqcore
