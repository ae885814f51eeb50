// File: protocol/handshake.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handshake is the value-typed instance spec.md §3 describes, wired onto
// a concurrency.EventLoop: it registers itself as the loop's sole
// EventHandler and HandleEvent runs exclusively on the loop's goroutine,
// which is what gives the FSM the total event ordering spec.md §5
// requires without any locking of its own fields.

package protocol

import (
	"github.com/momentics/spws/api"
	"github.com/momentics/spws/concurrency"
	"github.com/momentics/spws/pool"
)

// bufferPool backs every Handshake's opening_hs/response buffers. A
// single package-level pool is appropriate here: buffers are always
// DefaultBufferSize, and a listener driving many short-lived handshakes
// is the pool's only real customer.
var bufferPool = pool.NewBufferPool(64, DefaultBufferSize)

// Mode selects which side of the opening handshake an instance drives.
type Mode int

const (
	ModeServer Mode = iota
	ModeClient
)

// Result is the terminal outcome a Handshake reports through its done
// callback. ResultStopped is distinct from ResultOK/ResultError: it is
// reported only when the parent explicitly calls Stop before the FSM
// reached a terminal parse outcome on its own (spec.md §4.11's Stopping
// state, "reports stopped to the parent and returns to Idle").
type Result int

const (
	ResultOK Result = iota
	ResultError
	ResultStopped
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultError:
		return "error"
	case ResultStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// DoneFunc is the parent callback spec.md §6 calls "a single done event
// carrying the result code".
type DoneFunc func(result Result, err error)

// Handshake drives one opening handshake (client or server side) to
// completion. Construct with NewServerHandshake or NewClientHandshake,
// register its EventLoop's Run on a goroutine, then call Start.
type Handshake struct {
	mode       Mode
	timeoutMS  int
	resource   string
	remoteHost string
	peerCheck  PeerChecker
	localSP    SPID
	spMap      *SPTokenMap

	openingHS []byte
	response  []byte

	recvPos int
	recvLen int
	retries int

	parsedReq  ParsedRequest
	parsedResp ParsedResponse

	expectedAcceptKey [AcceptKeyLen]byte
	responseCode      ResponseCode

	state State

	sock api.Socket
	timer api.Timer
	loop  *concurrency.EventLoop
	done  DoneFunc

	pendingErr error
}

// NewServerHandshake constructs a server-side instance. sock and timer
// must post their completions into loop; loop is otherwise owned by the
// caller (it is not started here).
func NewServerHandshake(loop *concurrency.EventLoop, sock api.Socket, timer api.Timer, spMap *SPTokenMap, peerCheck PeerChecker, localSP SPID, done DoneFunc) *Handshake {
	h := &Handshake{
		mode:      ModeServer,
		timeoutMS: DefaultTimeoutMS,
		peerCheck: peerCheck,
		localSP:   localSP,
		spMap:     spMap,
		openingHS: bufferPool.Get(),
		response:  bufferPool.Get(),
		sock:      sock,
		timer:     timer,
		loop:      loop,
		done:      done,
		state:     StateIdle,
	}
	loop.RegisterHandler(h)
	return h
}

// NewClientHandshake constructs a client-side instance for the given
// request resource and remote Host header value.
func NewClientHandshake(loop *concurrency.EventLoop, sock api.Socket, timer api.Timer, spMap *SPTokenMap, peerCheck PeerChecker, localSP SPID, resource, remoteHost string, done DoneFunc) *Handshake {
	h := &Handshake{
		mode:       ModeClient,
		timeoutMS:  DefaultTimeoutMS,
		resource:   resource,
		remoteHost: remoteHost,
		peerCheck:  peerCheck,
		localSP:    localSP,
		spMap:      spMap,
		openingHS:  bufferPool.Get(),
		response:   bufferPool.Get(),
		sock:       sock,
		timer:      timer,
		loop:       loop,
		done:       done,
		state:      StateIdle,
	}
	loop.RegisterHandler(h)
	return h
}

// Start posts the Start action that begins the handshake. Safe to call
// from any goroutine; the actual transition happens on the loop.
func (h *Handshake) Start() {
	h.loop.Push(api.HandshakeEvent{Source: api.SourceAction, Type: api.EvStart})
}

// Stop posts a cancellation request. Safe to call from any goroutine.
func (h *Handshake) Stop() {
	h.loop.Push(api.HandshakeEvent{Source: api.SourceAction, Type: api.EvStop})
}

// SetTimeoutMS overrides the fixed timeout spec.md §3 otherwise pins at
// DefaultTimeoutMS. Must be called before Start.
func (h *Handshake) SetTimeoutMS(ms int) { h.timeoutMS = ms }

// State reports the current FSM state (diagnostic use only).
func (h *Handshake) State() State { return h.state }

// Retries reports the number of incremental recv rounds so far.
func (h *Handshake) Retries() int { return h.retries }

// ParsedRequest exposes the server-side parsed request fields once the
// instance has reached ServerReply or later.
func (h *Handshake) ParsedRequest() *ParsedRequest { return &h.parsedReq }

// ParsedResponse exposes the client-side parsed response fields once the
// instance has reached StoppingTimerDone/StoppingTimerError or later.
func (h *Handshake) ParsedResponse() *ParsedResponse { return &h.parsedResp }

// RequestBuffer returns the backing buffer ParsedRequest's slots index
// into. Callers resolve a header value with e.g.
// h.ParsedRequest().URI.Bytes(h.RequestBuffer()).
func (h *Handshake) RequestBuffer() []byte { return h.openingHS }

// ResponseBuffer returns the backing buffer ParsedResponse's slots index
// into.
func (h *Handshake) ResponseBuffer() []byte { return h.response }

// Release returns the instance's buffers to the shared pool. Call it
// once the terminal result (and any parsed slices borrowed from the
// buffers) has been fully consumed; parsed slices are invalid after
// Release (spec.md §3 invariant 2).
func (h *Handshake) Release() {
	bufferPool.Put(h.openingHS)
	bufferPool.Put(h.response)
	h.loop.UnregisterHandler(h)
}

// HandleEvent implements concurrency.EventHandler. It is called
// exclusively on the owning EventLoop's goroutine.
func (h *Handshake) HandleEvent(ev concurrency.Event) {
	hev, ok := ev.Data().(api.HandshakeEvent)
	if !ok {
		return
	}

	if hev.Source == api.SourceAction && hev.Type == api.EvStop && h.state != StateDone && h.state != StateStopping {
		h.timer.Stop()
		h.state = StateStopping
		return
	}

	switch h.state {
	case StateIdle:
		h.handleIdle(hev)
	case StateServerRecv:
		h.handleServerRecv(hev)
	case StateServerReply:
		h.handleServerReply(hev)
	case StateClientSend:
		h.handleClientSend(hev)
	case StateClientRecv:
		h.handleClientRecv(hev)
	case StateStoppingTimerError:
		h.handleStopping(hev, ResultError)
	case StateStoppingTimerDone:
		h.handleStopping(hev, ResultOK)
	case StateStopping:
		h.handleCancelStopping(hev)
	case StateDone:
		// Terminal: any further event is ignored.
	default:
		h.forceError(api.ErrCodeTransportError, "unexpected state", hev)
	}
}

func (h *Handshake) handleIdle(hev api.HandshakeEvent) {
	if hev.Source != api.SourceAction || hev.Type != api.EvStart {
		h.forceError(api.ErrCodeTransportError, "unexpected event in Idle", hev)
		return
	}
	h.timer.Start(h.timeoutMS)

	if h.mode == ModeServer {
		h.recvPos = 0
		h.recvLen = minRequestPrime
		h.state = StateServerRecv
		h.issueRecv(h.openingHS)
		return
	}

	h.startClientSend()
}

func (h *Handshake) startClientSend() {
	var encodedKey [24]byte
	n, err := FormatClientRequest(h.openingHS, h.resource, h.remoteHost, h.localSP, h.spMap, encodedKey[:])
	if err != nil {
		h.fail(api.ErrCodeProtocolMalformed, err.Error())
		return
	}
	var acceptBuf [AcceptKeyLen + 1]byte
	if err := deriveAcceptKey(encodedKey[:], acceptBuf[:]); err != nil {
		h.fail(api.ErrCodeProtocolMalformed, err.Error())
		return
	}
	copy(h.expectedAcceptKey[:], acceptBuf[:AcceptKeyLen])

	h.state = StateClientSend
	if err := h.sock.Send(h.openingHS[:n]); err != nil {
		h.fail(api.ErrCodeTransportError, err.Error())
	}
}

func (h *Handshake) handleServerRecv(hev api.HandshakeEvent) {
	switch {
	case hev.Source == api.SourceSocket && hev.Type == api.EvReceived:
		lim := h.recvPos + h.recvLen
		outcome, code := ParseRequest(h.openingHS, lim, h.spMap, h.peerCheck, &h.parsedReq)
		switch outcome {
		case Valid:
			h.responseCode = CodeOK
			h.pendingErr = nil
			h.sendServerReply()
		case Invalid:
			h.responseCode = code
			h.pendingErr = errForResponseCode(code)
			h.sendServerReply()
		case RecvMore:
			h.retries++
			pos, ln, overflow := nextChunk(h.openingHS, lim, len(h.openingHS))
			if overflow {
				h.responseCode = CodeTooBig
				h.pendingErr = api.NewError(api.ErrCodeBufferExhausted, "opening handshake too long")
				h.sendServerReply()
				return
			}
			h.recvPos, h.recvLen = pos, ln
			h.issueRecv(h.openingHS)
		}
	case hev.Source == api.SourceSocket && hev.Type == api.EvSocketError:
		h.enterStoppingError(api.ErrCodeTransportError, "socket error during server recv")
	case hev.Type == api.EvTimeout:
		h.enterStoppingError(api.ErrCodeTimeout, "timeout during server recv")
	}
}

func (h *Handshake) sendServerReply() {
	clientKey := h.parsedReq.Key.Bytes(h.openingHS)
	protocolBytes := h.parsedReq.Protocol.Bytes(h.openingHS)
	n, err := FormatServerReply(h.response, h.responseCode, clientKey, protocolBytes)
	if err != nil {
		h.enterStoppingError(api.ErrCodeProtocolMalformed, err.Error())
		return
	}
	h.state = StateServerReply
	if err := h.sock.Send(h.response[:n]); err != nil {
		h.enterStoppingError(api.ErrCodeTransportError, err.Error())
	}
}

func (h *Handshake) handleServerReply(hev api.HandshakeEvent) {
	switch {
	case hev.Source == api.SourceSocket && hev.Type == api.EvSent:
		// spec.md §4.11: ServerReply on Sent stops the timer and enters
		// StoppingTimerDone unconditionally; whether the eventual publish
		// is OK or ERROR is decided by pendingErr, set while parsing.
		h.timer.Stop()
		h.state = StateStoppingTimerDone
	case hev.Source == api.SourceSocket && hev.Type == api.EvSocketError:
		h.enterStoppingError(api.ErrCodeTransportError, "socket error sending server reply")
	case hev.Type == api.EvTimeout:
		h.enterStoppingError(api.ErrCodeTimeout, "timeout sending server reply")
	}
}

func (h *Handshake) handleClientSend(hev api.HandshakeEvent) {
	switch {
	case hev.Source == api.SourceSocket && hev.Type == api.EvSent:
		h.recvPos = 0
		h.recvLen = minResponsePrime
		h.state = StateClientRecv
		h.issueRecv(h.response)
	case hev.Source == api.SourceSocket && hev.Type == api.EvSocketError:
		h.enterStoppingError(api.ErrCodeTransportError, "socket error sending client request")
	case hev.Type == api.EvTimeout:
		h.enterStoppingError(api.ErrCodeTimeout, "timeout sending client request")
	}
}

func (h *Handshake) handleClientRecv(hev api.HandshakeEvent) {
	switch {
	case hev.Source == api.SourceSocket && hev.Type == api.EvReceived:
		lim := h.recvPos + h.recvLen
		outcome := ParseResponse(h.response, lim, h.expectedAcceptKey[:], &h.parsedResp)
		switch outcome {
		case Valid:
			h.pendingErr = nil
			h.timer.Stop()
			h.state = StateStoppingTimerDone
		case Invalid:
			h.enterStoppingError(api.ErrCodeProtocolIncompatible, "server reply rejected")
		case RecvMore:
			h.retries++
			pos, ln, overflow := nextChunk(h.response, lim, len(h.response))
			if overflow {
				h.enterStoppingError(api.ErrCodeBufferExhausted, "server reply too long")
				return
			}
			h.recvPos, h.recvLen = pos, ln
			h.issueRecv(h.response)
		}
	case hev.Source == api.SourceSocket && hev.Type == api.EvSocketError:
		h.enterStoppingError(api.ErrCodeTransportError, "socket error during client recv")
	case hev.Type == api.EvTimeout:
		h.enterStoppingError(api.ErrCodeTimeout, "timeout during client recv")
	}
}

func (h *Handshake) handleStopping(hev api.HandshakeEvent, onIdleDefault Result) {
	if hev.Source != api.SourceTimer || hev.Type != api.EvStopped {
		return
	}
	h.state = StateDone
	if h.pendingErr != nil {
		h.publish(ResultError, h.pendingErr)
		return
	}
	h.publish(onIdleDefault, nil)
}

func (h *Handshake) handleCancelStopping(hev api.HandshakeEvent) {
	if hev.Source != api.SourceTimer || hev.Type != api.EvStopped {
		return
	}
	h.state = StateIdle
	h.publish(ResultStopped, nil)
}

func (h *Handshake) issueRecv(buf []byte) {
	if err := h.sock.RecvInto(buf, h.recvPos, h.recvLen); err != nil {
		h.enterStoppingError(api.ErrCodeTransportError, err.Error())
	}
}

func (h *Handshake) enterStoppingError(code api.ErrorCode, msg string) {
	h.pendingErr = api.NewError(code, msg)
	h.timer.Stop()
	h.state = StateStoppingTimerError
}

// fail is used for synchronous setup failures (e.g. client request
// formatting failing before anything was ever sent). It unwinds through
// enterStoppingError like any other failure: the timer is stopped and
// the error is published once EvStopped arrives.
func (h *Handshake) fail(code api.ErrorCode, msg string) {
	h.enterStoppingError(code, msg)
}

func (h *Handshake) forceError(code api.ErrorCode, msg string, hev api.HandshakeEvent) {
	h.pendingErr = api.NewError(code, msg).WithContext("event", hev)
	h.timer.Stop()
	h.state = StateStoppingTimerError
}

func (h *Handshake) publish(result Result, err error) {
	if h.done != nil {
		h.done(result, err)
	}
}

func errForResponseCode(code ResponseCode) error {
	switch code {
	case CodeTooBig:
		return api.NewError(api.ErrCodeBufferExhausted, "opening handshake too long")
	case CodeWSProto, CodeWSVersion, CodeNNProto:
		return api.NewError(api.ErrCodeProtocolIncompatible, "handshake protocol mismatch")
	case CodeNotPeer, CodeUnknownType:
		return api.NewError(api.ErrCodePeerIncompatible, "incompatible or unknown socket type")
	default:
		return api.NewError(api.ErrCodeProtocolMalformed, "malformed handshake")
	}
}
