package service

import (
	"net"

	"go.uber.org/zap"

	"github.com/akaashdash/simulated-exchange/wire/fix"
)

// readBufferSize bounds a single framed request. Larger requests are not
// supported on this wire.
const readBufferSize = 1024

// handleConn drives one session: logon handshake, then the read-dispatch
// loop. Any failure is local to this session; the socket closes on every
// exit path.
func (e *Exchange) handleConn(conn net.Conn) {
	defer e.wg.Done()
	defer conn.Close()

	log := e.log.With(zap.String("remote", conn.RemoteAddr().String()))
	buf := make([]byte, readBufferSize)

	// AWAITING_LOGON: one framed message; anything but a valid logon
	// closes the socket silently.
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return
	}
	msg, err := fix.Decode(buf[:n])
	if err != nil || !validLogon(msg) {
		log.Debug("logon refused")
		return
	}
	if err := send(conn, logonResponse()); err != nil {
		return
	}

	e.metrics.ActiveSessions.Inc()
	defer e.metrics.ActiveSessions.Dec()
	log.Info("session active")

	// ACTIVE: one response per framed request, until the peer hangs up or
	// the exchange drains.
	for e.running.Load() {
		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			break
		}

		var resp *fix.Message
		msg, err := fix.Decode(buf[:n])
		if err != nil {
			resp = e.reject("Malformed message")
		} else {
			resp = e.dispatch(msg)
		}
		if err := send(conn, resp); err != nil {
			break
		}
	}

	log.Info("session closed")
}

// validLogon enforces the fixed session identity: MsgType A from CLIENT to
// SERVER with no encryption.
func validLogon(msg *fix.Message) bool {
	if msg.MsgType != fix.MsgTypeLogon {
		return false
	}
	if sender, _ := msg.Get(fix.TagSenderCompID); sender != fix.CompIDClient {
		return false
	}
	if target, _ := msg.Get(fix.TagTargetCompID); target != fix.CompIDServer {
		return false
	}
	if encrypt, _ := msg.Get(fix.TagEncryptMethod); encrypt != "0" {
		return false
	}
	return true
}

func logonResponse() *fix.Message {
	return serverMessage(fix.MsgTypeLogon).
		SetUint(fix.TagEncryptMethod, 0)
}

// serverMessage starts a response with the server's session identity.
func serverMessage(msgType string) *fix.Message {
	return fix.NewMessage(msgType).
		Set(fix.TagSenderCompID, fix.CompIDServer).
		Set(fix.TagTargetCompID, fix.CompIDClient)
}

func send(conn net.Conn, msg *fix.Message) error {
	_, err := conn.Write(fix.Encode(msg))
	return err
}
