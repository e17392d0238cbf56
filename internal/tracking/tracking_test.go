package tracking

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jacktrack.app/internal/geo"
)

var (
	t0   = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	home = geo.Point{Lat: 37.7749, Lon: -122.4194}
)

func newTestStore() *BallStore {
	s := NewBallStore()
	s.now = func() time.Time { return t0 }
	return s
}

func ball(id string) TrackedBall {
	return TrackedBall{ID: id, Name: "Golf " + id, BatteryPercent: 80, SignalDBm: -50, Position: home}
}

// gatedProvider returns its devices only when released, ignoring ctx.
type gatedProvider struct {
	release chan struct{}
	devices []DiscoveredBall
	err     error
}

func (g *gatedProvider) Discover(ctx context.Context) ([]DiscoveredBall, error) {
	<-g.release
	return g.devices, g.err
}

func TestAddThenRemoveRestoresCollection(t *testing.T) {
	s := newTestStore()
	if err := s.AddBall(ball("a")); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()

	if err := s.AddBall(ball("b")); err != nil {
		t.Fatal(err)
	}
	if !s.RemoveBall("b") {
		t.Fatal("RemoveBall(b) = false")
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	s := newTestStore()
	if err := s.AddBall(ball("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.AddBall(ball("a")); !errors.Is(err, ErrDuplicateBall) {
		t.Fatalf("err = %v, want ErrDuplicateBall", err)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
}

func TestRemoveMissing(t *testing.T) {
	s := newTestStore()
	if s.RemoveBall("nope") {
		t.Error("RemoveBall on empty store = true")
	}
}

func TestUpdatesRefreshTimestamp(t *testing.T) {
	s := newTestStore()
	if err := s.AddBall(ball("a")); err != nil {
		t.Fatal(err)
	}
	later := t0.Add(time.Minute)
	s.now = func() time.Time { return later }

	p := geo.Offset(home, 0.001, 0)
	if err := s.UpdateLocation("a", p); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateBattery("a", 150); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateSignal("a", -70); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get("a")
	want := ball("a")
	want.Position = p
	want.BatteryPercent = 100
	want.SignalDBm = -70
	want.ConnectedAt = t0
	want.LastUpdated = later
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ball mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatesMissingBall(t *testing.T) {
	s := newTestStore()
	for name, err := range map[string]error{
		"location": s.UpdateLocation("x", home),
		"battery":  s.UpdateBattery("x", 10),
		"signal":   s.UpdateSignal("x", -40),
	} {
		if !errors.Is(err, ErrBallNotFound) {
			t.Errorf("%s: err = %v, want ErrBallNotFound", name, err)
		}
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
}

func TestStale(t *testing.T) {
	s := newTestStore()
	old := ball("old")
	old.LastUpdated = t0.Add(-2 * time.Minute)
	_ = s.AddBall(old)
	_ = s.AddBall(ball("fresh"))

	if diff := cmp.Diff([]string{"old"}, s.Stale(time.Minute)); diff != "" {
		t.Errorf("Stale mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPopulatesDiscovered(t *testing.T) {
	store := newTestStore()
	_ = store.AddBall(TrackedBall{ID: "C0:FF:EE:00:00:02", Name: "Golf Ball #2"})
	tr := NewTracker(store, NewMockProvider(time.Millisecond))

	scan, err := tr.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !store.Scanning() {
		t.Error("store not scanning after StartScan")
	}
	got, err := scan.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d devices, want 2 (connected one filtered)", len(got))
	}
	if diff := cmp.Diff(got, tr.Discovered()); diff != "" {
		t.Errorf("Discovered mismatch (-want +got):\n%s", diff)
	}
	if store.Scanning() {
		t.Error("store still scanning after completion")
	}
}

func TestCancelledScanNeverPopulates(t *testing.T) {
	store := newTestStore()
	p := &gatedProvider{release: make(chan struct{}), devices: mockTrackers}
	tr := NewTracker(store, p)

	scan, err := tr.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	scan.Cancel()
	if tr.Scanning() || store.Scanning() {
		t.Error("still scanning after Cancel")
	}
	close(p.release)

	if _, err := scan.Wait(context.Background()); !errors.Is(err, ErrScanCancelled) {
		t.Fatalf("err = %v, want ErrScanCancelled", err)
	}
	if got := tr.Discovered(); len(got) != 0 {
		t.Errorf("Discovered = %v, want empty", got)
	}
}

// seqProvider serves one provider per Discover call, in order.
type seqProvider struct {
	mu    sync.Mutex
	calls int
	steps []Provider
}

func (s *seqProvider) Discover(ctx context.Context) ([]DiscoveredBall, error) {
	s.mu.Lock()
	p := s.steps[s.calls]
	s.calls++
	s.mu.Unlock()
	return p.Discover(ctx)
}

func TestStaleScanDoesNotOverwriteNewer(t *testing.T) {
	store := newTestStore()
	first := &gatedProvider{release: make(chan struct{}), devices: mockTrackers[:1]}
	tr := NewTracker(store, &seqProvider{steps: []Provider{first, NewMockProvider(time.Millisecond)}})

	old, err := tr.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	old.Cancel()

	fresh, err := tr.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fresh.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	close(first.release)
	if _, err := old.Wait(context.Background()); !errors.Is(err, ErrScanCancelled) {
		t.Fatalf("old scan err = %v, want ErrScanCancelled", err)
	}
	if got := len(tr.Discovered()); got != len(mockTrackers) {
		t.Errorf("Discovered has %d, want %d", got, len(mockTrackers))
	}
	if fresh.ID() <= old.ID() {
		t.Errorf("scan ids not increasing: %d then %d", old.ID(), fresh.ID())
	}
}

func TestStartScanGuards(t *testing.T) {
	store := newTestStore()
	p := &gatedProvider{release: make(chan struct{})}
	tr := NewTracker(store, p)

	scan, err := tr.StartScan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.StartScan(context.Background()); !errors.Is(err, ErrScanInProgress) {
		t.Errorf("second StartScan err = %v, want ErrScanInProgress", err)
	}

	tr.SetBluetoothEnabled(false)
	if tr.Scanning() {
		t.Error("disabling bluetooth left scan running")
	}
	if _, err := tr.StartScan(context.Background()); !errors.Is(err, ErrBluetoothDisabled) {
		t.Errorf("StartScan with bluetooth off err = %v, want ErrBluetoothDisabled", err)
	}
	close(p.release)
	<-scan.Done()
}

func TestConnectDisconnect(t *testing.T) {
	store := newTestStore()
	tr := NewTracker(store, NewMockProvider(time.Millisecond))
	scan, _ := tr.StartScan(context.Background())
	if _, err := scan.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	b, err := tr.Connect("C0:FF:EE:00:00:03", home)
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "Pro Golf Ball" || b.BatteryPercent != 92 || b.SignalDBm != -35 {
		t.Errorf("connected ball = %+v", b)
	}
	if d := geo.Distance(home, b.Position); d > 1000 {
		t.Errorf("synthetic position %.0f m from player", d)
	}
	if len(tr.Discovered()) != 2 {
		t.Errorf("connected ball still listed as discovered")
	}
	if _, err := tr.Connect("C0:FF:EE:00:00:03", home); !errors.Is(err, ErrBallNotFound) {
		t.Errorf("reconnect err = %v, want ErrBallNotFound", err)
	}

	if err := tr.Disconnect(b.ID); err != nil {
		t.Fatal(err)
	}
	if err := tr.Disconnect(b.ID); !errors.Is(err, ErrBallNotFound) {
		t.Errorf("second Disconnect err = %v, want ErrBallNotFound", err)
	}
}

func TestConnectLeavesScanResultIntact(t *testing.T) {
	tr := NewTracker(newTestStore(), NewMockProvider(time.Millisecond))
	scan, _ := tr.StartScan(context.Background())
	found, err := scan.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	before := append([]DiscoveredBall(nil), found...)

	if _, err := tr.Connect(found[0].ID, home); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, found); diff != "" {
		t.Errorf("scan result changed by Connect (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before[1:], tr.Discovered()); diff != "" {
		t.Errorf("Discovered() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAdvertisement(t *testing.T) {
	tests := []struct {
		name string
		ad   advertisement
		want DiscoveredBall
		ok   bool
	}{
		{
			name: "tracker",
			ad:   advertisement{address: "c0:ff:ee:00:00:01", name: "Golf Ball #1", rssi: -48, battery: 77},
			want: DiscoveredBall{ID: "C0:FF:EE:00:00:01", Name: "Golf Ball #1", BatteryPercent: 77, SignalDBm: -48},
			ok:   true,
		},
		{
			name: "other device",
			ad:   advertisement{address: "aa:bb", name: "Headphones", rssi: -40},
		},
		{
			name: "unnamed",
			ad:   advertisement{address: "aa:bb", rssi: -40},
		},
		{
			name: "battery over range",
			ad:   advertisement{address: "aa", name: "Pro Golf Ball", rssi: -30, battery: 250},
			want: DiscoveredBall{ID: "AA", Name: "Pro Golf Ball", BatteryPercent: 100, SignalDBm: -30},
			ok:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAdvertisement(tt.ad)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignalRing(t *testing.T) {
	r := NewSignalRing(3)
	if r.Values() != nil || r.Last() != 0 {
		t.Fatal("empty ring not empty")
	}
	for _, v := range []float64{1, 2, 3, 4} {
		r.Push(v)
	}
	if diff := cmp.Diff([]float64{2, 3, 4}, r.Values()); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if r.Last() != 4 || r.Len() != 3 {
		t.Errorf("Last = %v Len = %d", r.Last(), r.Len())
	}
}

func TestSignalHistoryDropsDisconnected(t *testing.T) {
	h := NewSignalHistory(5)
	a, b := ball("a"), ball("b")
	h.Record([]TrackedBall{a, b})
	h.Record([]TrackedBall{a})
	if h.Values("b") != nil {
		t.Error("history kept for disconnected ball")
	}
	if got := len(h.Values("a")); got != 2 {
		t.Errorf("len(a) = %d, want 2", got)
	}
}

func TestTelemetryKeepsBounds(t *testing.T) {
	s := newTestStore()
	_ = s.AddBall(ball("a"))
	tel := NewTelemetry(s, rand.New(rand.NewSource(1)))
	for i := 0; i < 500; i++ {
		tel.Step()
	}
	b, _ := s.Get("a")
	if b.BatteryPercent < 0 || b.BatteryPercent > 100 {
		t.Errorf("battery = %d", b.BatteryPercent)
	}
	if b.SignalDBm > -30 || b.SignalDBm < -95 {
		t.Errorf("signal = %d", b.SignalDBm)
	}
	if d := geo.Distance(home, b.Position); d > 300 {
		t.Errorf("drifted %.0f m", d)
	}
}

func TestSignalToDistance(t *testing.T) {
	if got := SignalToDistance(-59, -59, 2.5); got < 0.99 || got > 1.01 {
		t.Errorf("at measured power got %.2f, want 1", got)
	}
	if SignalToDistance(-80, -59, 2.5) <= SignalToDistance(-60, -59, 2.5) {
		t.Error("weaker signal not farther")
	}
}

func TestSeedDemoBallsTwiceKeepsOneCopy(t *testing.T) {
	store := newTestStore()
	SeedDemoBalls(store, home)
	SeedDemoBalls(store, home)
	if got := store.Count(); got != 2 {
		t.Errorf("Count = %d after reseeding, want 2", got)
	}
}
