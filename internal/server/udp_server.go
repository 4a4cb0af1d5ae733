package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/jroosing/framedns/internal/dns"
	"github.com/jroosing/framedns/internal/pool"
)

// readBufferSize is one byte larger than a frame so oversized datagrams are
// seen as such instead of being silently cut to 512 bytes.
const readBufferSize = dns.MaxUDPSize + 1

// UDPServer answers DNS queries over UDP.
//
// Each datagram is copied out of a pooled read buffer and handled in its own
// goroutine, bounded by MaxConcurrency. Datagrams beyond the bound, or
// refused by Limiter, are dropped.
type UDPServer struct {
	Logger         *slog.Logger  // Optional logger
	Handler        *QueryHandler // Query processor
	Limiter        *RateLimiter  // Optional admission control
	Stats          *Stats        // Optional counters
	MaxConcurrency int           // Maximum concurrent handlers (default 1)
	ReusePort      bool          // Set SO_REUSEPORT on the listening socket

	mu       sync.Mutex
	conn     net.PacketConn
	loopDone chan struct{} // closed when RunOnConn returns
	wg       sync.WaitGroup
	sem      chan struct{}
	buffers  *pool.Pool[*[]byte]
}

// Listen opens the UDP socket on addr. SO_REUSEADDR is always set.
func (s *UDPServer) Listen(ctx context.Context, addr string) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var serr error
			err := c.Control(func(fd uintptr) {
				serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				if serr == nil && s.ReusePort {
					serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
				}
			})
			if err != nil {
				return err
			}
			return serr
		},
	}
	conn, err := lc.ListenPacket(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("udp listen %s: %w", addr, err)
	}
	return conn, nil
}

// Run listens on addr and serves until ctx is canceled.
func (s *UDPServer) Run(ctx context.Context, addr string) error {
	conn, err := s.Listen(ctx, addr)
	if err != nil {
		return err
	}
	return s.RunOnConn(ctx, conn)
}

// RunOnConn serves on an existing socket until ctx is canceled or the
// socket is closed. The socket is closed on return.
func (s *UDPServer) RunOnConn(ctx context.Context, conn net.PacketConn) error {
	loopDone := make(chan struct{})
	s.mu.Lock()
	s.conn = conn
	s.loopDone = loopDone
	s.sem = make(chan struct{}, max(s.MaxConcurrency, 1))
	s.buffers = pool.NewBuffers(readBufferSize)
	s.mu.Unlock()
	defer close(loopDone)
	defer conn.Close()

	for ctx.Err() == nil {
		packet, peer, err := s.receivePacket(conn)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}
		if packet == nil {
			continue
		}
		if s.Stats != nil {
			s.Stats.RecordReceived()
		}

		if !s.Limiter.AllowAddr(peer.Addr()) {
			if s.Stats != nil {
				s.Stats.RecordRateLimited()
			}
			continue
		}

		if !s.tryAcquireSemaphore() {
			if s.Stats != nil {
				s.Stats.RecordDropped()
			}
			continue
		}

		s.wg.Add(1)
		go s.handleRequest(ctx, conn, packet, peer)
	}
	return nil
}

// receivePacket reads one datagram into a pooled buffer and returns a copy.
// A nil packet with nil error means the read deadline expired.
func (s *UDPServer) receivePacket(conn net.PacketConn) ([]byte, netip.AddrPort, error) {
	bufPtr := s.buffers.Get()
	defer s.buffers.Put(bufPtr)
	buf := *bufPtr

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	n, remote, err := conn.ReadFrom(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, netip.AddrPort{}, nil
		}
		return nil, netip.AddrPort{}, err
	}
	udpAddr, ok := remote.(*net.UDPAddr)
	if !ok {
		return nil, netip.AddrPort{}, nil
	}

	data := make([]byte, n)
	copy(data, buf[:n])
	return data, udpAddr.AddrPort(), nil
}

func (s *UDPServer) tryAcquireSemaphore() bool {
	select {
	case s.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *UDPServer) handleRequest(ctx context.Context, conn net.PacketConn, payload []byte, peer netip.AddrPort) {
	defer s.wg.Done()
	defer func() { <-s.sem }()

	if s.Handler == nil {
		return
	}

	res := s.Handler.Handle(ctx, peer.String(), payload)
	if len(res.ResponseBytes) == 0 {
		return
	}
	if _, err := conn.WriteTo(res.ResponseBytes, net.UDPAddrFromAddrPort(peer)); err != nil && s.Logger != nil {
		s.Logger.Debug("udp write failed", "peer", peer.String(), "err", err)
	}
}

// LocalAddr returns the bound address, or nil before RunOnConn.
func (s *UDPServer) LocalAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Stop closes the socket and waits up to timeout for the receive loop and
// in-flight handlers. A timeout <= 0 waits indefinitely.
func (s *UDPServer) Stop(timeout time.Duration) error {
	s.mu.Lock()
	conn, loopDone := s.conn, s.loopDone
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	_ = conn.Close()

	// The loop is the only caller of wg.Add, so it must be gone before Wait.
	wait := func() {
		<-loopDone
		s.wg.Wait()
	}
	if timeout <= 0 {
		wait()
		return nil
	}

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.New("udp server: timeout waiting for in-flight requests")
	}
}
