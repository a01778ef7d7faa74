package transport

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// MockDNSCodec implements wire.DNSCodec for testing
type MockDNSCodec struct {
	mock.Mock
}

func (m *MockDNSCodec) DecodeRequest(data []byte) (domain.Message, error) {
	args := m.Called(data)
	return args.Get(0).(domain.Message), args.Error(1)
}

func (m *MockDNSCodec) EncodeResponse(resp domain.Message) ([]byte, error) {
	args := m.Called(resp)
	return args.Get(0).([]byte), args.Error(1)
}

// MockRequestHandler implements RequestHandler for testing
type MockRequestHandler struct {
	mock.Mock
}

func (m *MockRequestHandler) HandleRequest(ctx context.Context, req domain.Message, clientAddr net.Addr) (domain.Message, error) {
	args := m.Called(ctx, req, clientAddr)
	return args.Get(0).(domain.Message), args.Error(1)
}

// MockLogger implements log.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Info(fields map[string]any, msg string)  { m.Called(fields, msg) }
func (m *MockLogger) Error(fields map[string]any, msg string) { m.Called(fields, msg) }
func (m *MockLogger) Debug(fields map[string]any, msg string) { m.Called(fields, msg) }
func (m *MockLogger) Warn(fields map[string]any, msg string)  { m.Called(fields, msg) }
func (m *MockLogger) Panic(fields map[string]any, msg string) { m.Called(fields, msg) }
func (m *MockLogger) Fatal(fields map[string]any, msg string) { m.Called(fields, msg) }

// testLogger is a no-op logger for tests that don't verify logging
type testLogger struct{}

func (t *testLogger) Info(map[string]any, string)  {}
func (t *testLogger) Error(map[string]any, string) {}
func (t *testLogger) Debug(map[string]any, string) {}
func (t *testLogger) Warn(map[string]any, string)  {}
func (t *testLogger) Panic(map[string]any, string) {}
func (t *testLogger) Fatal(map[string]any, string) {}

func testMessages() (domain.Message, domain.Message) {
	req := domain.Message{
		Header:   domain.Header{ID: 12345, QDCount: 1},
		Question: domain.Question{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN},
	}
	return req, domain.NewResponse(req, nil)
}

func dialTransport(t *testing.T, tr *UDPTransport) *net.UDPConn {
	t.Helper()
	addr, err := net.ResolveUDPAddr("udp", tr.Address())
	require.NoError(t, err)
	conn, err := net.DialUDP("udp", nil, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func permissiveLogger() *MockLogger {
	l := &MockLogger{}
	l.On("Info", mock.Anything, mock.Anything).Maybe()
	l.On("Debug", mock.Anything, mock.Anything).Maybe()
	l.On("Warn", mock.Anything, mock.Anything).Maybe()
	l.On("Error", mock.Anything, mock.Anything).Maybe()
	return l
}

func TestNewUDPTransport(t *testing.T) {
	codec := &MockDNSCodec{}
	logger := &testLogger{}
	addr := "127.0.0.1:5053"

	tr := NewUDPTransport(addr, codec, logger)

	require.NotNil(t, tr)
	assert.Equal(t, addr, tr.addr)
	assert.Equal(t, codec, tr.codec)
	assert.Equal(t, addr, tr.Address())
	assert.False(t, tr.running)
}

func TestUDPTransport_StartStop(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid address", addr: "127.0.0.1:0"},
		{name: "invalid address format", addr: "invalid-address", wantErr: true, errMsg: "failed to resolve UDP address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewUDPTransport(tt.addr, &MockDNSCodec{}, &testLogger{})
			handler := &MockRequestHandler{}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := tr.Start(ctx, handler)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.True(t, tr.running)
			assert.NotEqual(t, "127.0.0.1:0", tr.Address(), "Address reports the bound port")

			err = tr.Start(ctx, handler)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already running")

			assert.NoError(t, tr.Stop())
			assert.False(t, tr.running)
			assert.NoError(t, tr.Stop())
		})
	}
}

func TestUDPTransport_BindConflict(t *testing.T) {
	first := NewUDPTransport("127.0.0.1:0", &MockDNSCodec{}, &testLogger{})
	require.NoError(t, first.Start(context.Background(), &MockRequestHandler{}))
	defer first.Stop()

	second := NewUDPTransport(first.Address(), &MockDNSCodec{}, &testLogger{})
	err := second.Start(context.Background(), &MockRequestHandler{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind UDP socket")
}

func TestUDPTransport_RequestHandling(t *testing.T) {
	codec := &MockDNSCodec{}
	handler := &MockRequestHandler{}
	req, resp := testMessages()

	requestData := []byte{0x01, 0x02, 0x03}
	responseData := []byte{0x04, 0x05, 0x06}

	codec.On("DecodeRequest", requestData).Return(req, nil)
	codec.On("EncodeResponse", resp).Return(responseData, nil)
	handler.On("HandleRequest", mock.Anything, req, mock.AnythingOfType("*net.UDPAddr")).Return(resp, nil)

	tr := NewUDPTransport("127.0.0.1:0", codec, permissiveLogger())
	require.NoError(t, tr.Start(context.Background(), handler))
	defer tr.Stop()

	client := dialTransport(t, tr)
	_, err := client.Write(requestData)
	require.NoError(t, err)

	buf := make([]byte, 512)
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := client.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, responseData, buf[:n])

	codec.AssertExpectations(t)
	handler.AssertExpectations(t)
}

func TestUDPTransport_DropsOnFailure(t *testing.T) {
	req, resp := testMessages()
	data := []byte{0xFF, 0xFF, 0xFF}

	tests := []struct {
		name   string
		setup  func(codec *MockDNSCodec, handler *MockRequestHandler)
		level  string
		logMsg string
	}{
		{
			name: "decode error",
			setup: func(codec *MockDNSCodec, _ *MockRequestHandler) {
				codec.On("DecodeRequest", data).Return(domain.Message{}, assert.AnError)
			},
			level:  "Warn",
			logMsg: "Failed to decode DNS request",
		},
		{
			name: "handler error",
			setup: func(codec *MockDNSCodec, handler *MockRequestHandler) {
				codec.On("DecodeRequest", data).Return(req, nil)
				handler.On("HandleRequest", mock.Anything, req, mock.Anything).Return(domain.Message{}, assert.AnError)
			},
			level:  "Error",
			logMsg: "Failed to handle DNS request",
		},
		{
			name: "encode error",
			setup: func(codec *MockDNSCodec, handler *MockRequestHandler) {
				codec.On("DecodeRequest", data).Return(req, nil)
				handler.On("HandleRequest", mock.Anything, req, mock.Anything).Return(resp, nil)
				codec.On("EncodeResponse", resp).Return([]byte(nil), assert.AnError)
			},
			level:  "Error",
			logMsg: "Failed to encode DNS response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := &MockDNSCodec{}
			handler := &MockRequestHandler{}
			tt.setup(codec, handler)

			logged := make(chan struct{}, 1)
			logger := &MockLogger{}
			logger.On(tt.level, mock.MatchedBy(func(fields map[string]any) bool {
				return fields["error"] != nil
			}), tt.logMsg).Run(func(mock.Arguments) { logged <- struct{}{} }).Once()
			logger.On("Info", mock.Anything, mock.Anything).Maybe()
			logger.On("Debug", mock.Anything, mock.Anything).Maybe()

			tr := NewUDPTransport("127.0.0.1:0", codec, logger)
			require.NoError(t, tr.Start(context.Background(), handler))
			defer tr.Stop()

			client := dialTransport(t, tr)
			_, err := client.Write(data)
			require.NoError(t, err)

			select {
			case <-logged:
			case <-time.After(2 * time.Second):
				t.Fatal("failure was not logged")
			}

			// no reply is sent
			require.NoError(t, client.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
			_, err = client.Read(make([]byte, 512))
			assert.Error(t, err)

			codec.AssertExpectations(t)
			handler.AssertExpectations(t)
		})
	}
}

func TestUDPTransport_ContextCancellationStops(t *testing.T) {
	tr := NewUDPTransport("127.0.0.1:0", &MockDNSCodec{}, &testLogger{})
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, tr.Start(ctx, &MockRequestHandler{}))
	cancel()

	assert.Eventually(t, func() bool {
		tr.mu.RLock()
		defer tr.mu.RUnlock()
		return !tr.running
	}, 2*time.Second, 10*time.Millisecond)

	assert.NoError(t, tr.Stop())
}

func TestUDPTransport_ConcurrentStopWaitsForLoop(t *testing.T) {
	tr := NewUDPTransport("127.0.0.1:0", &MockDNSCodec{}, &testLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, tr.Start(ctx, &MockRequestHandler{}))

	tr.mu.RLock()
	loopDone := tr.loopDone
	tr.mu.RUnlock()

	cancel()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, tr.Stop())
			select {
			case <-loopDone:
			default:
				t.Error("Stop returned before the receive loop exited")
			}
		}()
	}
	wg.Wait()
}

func TestUDPTransport_ConcurrentRequests(t *testing.T) {
	codec := &MockDNSCodec{}
	handler := &MockRequestHandler{}
	req, resp := testMessages()

	codec.On("DecodeRequest", mock.Anything).Return(req, nil)
	codec.On("EncodeResponse", resp).Return([]byte{0xAA}, nil)
	handler.On("HandleRequest", mock.Anything, req, mock.Anything).Return(resp, nil)

	tr := NewUDPTransport("127.0.0.1:0", codec, &testLogger{})
	require.NoError(t, tr.Start(context.Background(), handler))
	defer tr.Stop()

	const clients = 10
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := dialTransport(t, tr)
			_, err := client.Write([]byte{0x01})
			assert.NoError(t, err)

			buf := make([]byte, 16)
			assert.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
			n, err := client.Read(buf)
			assert.NoError(t, err)
			assert.Equal(t, []byte{0xAA}, buf[:n])
		}()
	}
	wg.Wait()

	handler.AssertNumberOfCalls(t, "HandleRequest", clients)
}
