package mailer

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts one session and sends the DATA payload on the channel.
func fakeSMTP(t *testing.T) (string, int, <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		reply := func(s string) { fmt.Fprintf(conn, "%s\r\n", s) }

		reply("220 localhost ESMTP")
		var data strings.Builder
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if line == ".\r\n" {
					inData = false
					reply("250 OK")
					continue
				}
				data.WriteString(line)
				continue
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250-localhost")
				reply("250 8BITMIME")
			case cmd == "DATA":
				reply("354 go ahead")
				inData = true
			case cmd == "QUIT":
				reply("221 bye")
				got <- data.String()
				return
			default:
				reply("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, got
}

func TestSMTPMailer_Send(t *testing.T) {
	host, port, got := fakeSMTP(t)
	m := NewSMTPMailer(host, port, "reservas@elsabor.test", "", "", false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.Send(ctx, Message{
		FromName: "Reservas El Sabor",
		To:       "ana@example.com",
		Subject:  "Nueva reserva de Ana",
		Text:     "Reserva de Ana",
		HTML:     "<h2>Reserva</h2>",
	})
	require.NoError(t, err)

	select {
	case data := <-got:
		assert.Contains(t, data, `From: "Reservas El Sabor" <reservas@elsabor.test>`)
		assert.Contains(t, data, "To: ana@example.com")
		assert.Contains(t, data, "Subject: Nueva reserva de Ana")
		assert.Contains(t, data, "Content-Type: text/html; charset=utf-8")
		assert.Contains(t, data, "<h2>Reserva</h2>")
	case <-time.After(5 * time.Second):
		t.Fatal("smtp server did not receive a message")
	}
}

func TestSMTPMailer_EncodesNonASCIISubject(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "reservas@elsabor.test", "", "", false)
	raw := string(m.buildMIME(Message{To: "ana@example.com", Subject: "Confirmación de tu reserva"}))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
	assert.NotContains(t, raw, "Confirmación")
}

func TestSMTPMailer_RejectsEmptyRecipient(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "reservas@elsabor.test", "", "", false)
	_, err := m.Send(context.Background(), Message{To: "  "})
	assert.Error(t, err)
}

func TestSMTPMailer_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	m := NewSMTPMailer("127.0.0.1", port, "reservas@elsabor.test", "", "", false)
	_, err = m.Send(context.Background(), Message{To: "ana@example.com"})
	assert.Error(t, err)
}

func TestDevMailer_Send(t *testing.T) {
	id, err := NewDevMailer("reservas@elsabor.test").Send(context.Background(), Message{To: "ana@example.com", Subject: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestMailerSend_Disabled(t *testing.T) {
	_, err := NewMailerSend("", "reservas@elsabor.test").Send(context.Background(), Message{To: "ana@example.com"})
	assert.Error(t, err)
}
