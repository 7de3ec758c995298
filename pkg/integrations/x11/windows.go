// Package x11 implements the probe capabilities for Linux desktops: window
// enumeration over the X protocol, /proc-based process listing, and
// nmcli/ip-based network probing.
package x11

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"complyd/pkg/probe"
)

// Enumerator lists mapped top-level X11 windows via _NET_CLIENT_LIST.
type Enumerator struct{}

// NewEnumerator creates an X11 window enumerator. The X connection is
// opened per pass so a display restart never wedges the agent.
func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

// TitlesAvailable is true: X11 exposes window titles directly.
func (e *Enumerator) TitlesAvailable() bool { return true }

// Enumerate connects to the display and reads the window manager's client
// list with each window's title.
func (e *Enumerator) Enumerate(ctx context.Context) (*probe.WindowSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := newClient()
	if err != nil {
		return nil, fmt.Errorf("x11 connect failed: %w", err)
	}
	defer client.close()

	ids, err := client.clientList()
	if err != nil {
		return nil, fmt.Errorf("x11 client list failed: %w", err)
	}

	snap := &probe.WindowSnapshot{}
	for _, id := range ids {
		title := client.windowName(id)
		if strings.TrimSpace(title) == "" {
			continue
		}
		snap.Windows = append(snap.Windows, probe.WindowRecord{
			Handle: fmt.Sprintf("0x%x", uint32(id)),
			Title:  title,
		})
	}
	return snap, nil
}

type client struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

func newClient() (*client, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	c := &client{
		conn:  conn,
		root:  setup.DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom),
	}

	for _, name := range []string{"_NET_CLIENT_LIST", "_NET_WM_NAME", "WM_NAME", "UTF8_STRING"} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, err
		}
		c.atoms[name] = reply.Atom
	}
	return c, nil
}

func (c *client) close() {
	c.conn.Close()
}

func (c *client) getProperty(window xproto.Window, atom xproto.Atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(c.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// clientList reads the window IDs the window manager considers managed
// top-level clients.
func (c *client) clientList() ([]xproto.Window, error) {
	data, err := c.getProperty(c.root, c.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, 1024)
	if err != nil {
		return nil, err
	}

	ids := make([]xproto.Window, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		ids = append(ids, xproto.Window(binary.LittleEndian.Uint32(data[i:i+4])))
	}
	return ids, nil
}

// windowName prefers the EWMH UTF-8 title and falls back to legacy WM_NAME.
func (c *client) windowName(window xproto.Window) string {
	data, err := c.getProperty(window, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = c.getProperty(window, c.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	return ""
}
