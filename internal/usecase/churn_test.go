package usecase

import (
	"context"
	"testing"
	"time"

	"BizPulse/internal/domain/models"
	"BizPulse/internal/services/features"
	xhttp "BizPulse/pkg/http"
)

func newChurnFixture(clients []models.Client, predictor *fakeChurnPredictor) (*ChurnUseCase, *fakePredictionStore) {
	clientStore := &fakeClientStore{clients: clients, visits: map[uint]int64{}}
	orderStore := &fakeOrderStore{}
	store := &fakePredictionStore{}
	uc := NewChurnUseCase(
		clientStore,
		features.NewExtractor(clientStore, orderStore),
		predictor,
		store,
		nopEvents{},
		nopMetrics{},
		testLogger(),
	)
	return uc, store
}

func activeClients(n int) []models.Client {
	out := make([]models.Client, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Client{
			ID:        uint(i),
			Name:      "client",
			Status:    models.ClientStatusActive,
			CreatedAt: time.Now().AddDate(-1, 0, 0),
		})
	}
	return out
}

func TestChurnRunScoresAllActiveByDefault(t *testing.T) {
	predictor := &fakeChurnPredictor{scores: map[uint]float64{1: 0.85, 2: 0.5, 3: 0.1}}
	uc, store := newChurnFixture(activeClients(3), predictor)

	result, err := uc.Run(context.Background(), models.ChurnRunRequest{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Predictions) != 3 {
		t.Fatalf("got %d predictions, want 3", len(result.Predictions))
	}
	for id := uint(1); id <= 3; id++ {
		if got := len(store.activeFor(id)); got != 1 {
			t.Errorf("client %d has %d active predictions, want 1", id, got)
		}
	}
}

func TestChurnRunReplacesOnlyAffectedClients(t *testing.T) {
	predictor := &fakeChurnPredictor{scores: map[uint]float64{1: 0.9, 2: 0.9}}
	uc, store := newChurnFixture(activeClients(2), predictor)

	// Pre-existing active prediction for an unrelated client must survive.
	store.rows = append(store.rows, models.ChurnPrediction{ClientID: 99, Score: 0.3, Tier: models.TierLow, Active: true})

	if _, err := uc.Run(context.Background(), models.ChurnRunRequest{ClientIDs: []uint{1, 2}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(store.activeFor(99)); got != 1 {
		t.Errorf("unrelated client lost its active prediction (have %d)", got)
	}
	if got := len(store.activeFor(1)); got != 1 {
		t.Errorf("client 1 has %d active predictions, want 1", got)
	}
}

func TestChurnRunTwiceKeepsOneActive(t *testing.T) {
	predictor := &fakeChurnPredictor{scores: map[uint]float64{1: 0.75}}
	uc, store := newChurnFixture(activeClients(1), predictor)

	first, err := uc.Run(context.Background(), models.ChurnRunRequest{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := uc.Run(context.Background(), models.ChurnRunRequest{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Predictions[0].Tier != second.Predictions[0].Tier {
		t.Errorf("tier changed between identical runs: %s vs %s",
			first.Predictions[0].Tier, second.Predictions[0].Tier)
	}
	if got := len(store.activeFor(1)); got != 1 {
		t.Errorf("client has %d active predictions after two runs, want 1", got)
	}
	if len(store.rows) != 2 {
		t.Errorf("history rows = %d, want 2 (retired + active)", len(store.rows))
	}
}

func TestChurnRunEmptySubjectSet(t *testing.T) {
	predictor := &fakeChurnPredictor{}
	uc, _ := newChurnFixture(nil, predictor)

	_, err := uc.Run(context.Background(), models.ChurnRunRequest{})
	if err == nil {
		t.Fatal("expected error for empty subject set")
	}
	if !xhttp.HasCode(err, xhttp.CodeInsufficientData) {
		t.Errorf("got %v, want %s", err, xhttp.CodeInsufficientData)
	}
	if predictor.calls != 0 {
		t.Errorf("predictor called %d times, want 0", predictor.calls)
	}
}

func TestChurnRunUnknownClient(t *testing.T) {
	predictor := &fakeChurnPredictor{}
	uc, _ := newChurnFixture(activeClients(1), predictor)

	_, err := uc.Run(context.Background(), models.ChurnRunRequest{ClientIDs: []uint{1, 42}})
	if !xhttp.HasCode(err, xhttp.CodeNotFound) {
		t.Errorf("got %v, want %s", err, xhttp.CodeNotFound)
	}
}

func TestChurnRunUpstreamFailureLeavesStateUnchanged(t *testing.T) {
	predictor := &fakeChurnPredictor{err: xhttp.UpstreamUnavailableError(nil)}
	uc, store := newChurnFixture(activeClients(1), predictor)
	store.rows = append(store.rows, models.ChurnPrediction{ClientID: 1, Score: 0.2, Tier: models.TierLow, Active: true})

	_, err := uc.Run(context.Background(), models.ChurnRunRequest{})
	if !xhttp.HasCode(err, xhttp.CodeUpstreamUnavailable) {
		t.Fatalf("got %v, want %s", err, xhttp.CodeUpstreamUnavailable)
	}
	active := store.activeFor(1)
	if len(active) != 1 || active[0].Score != 0.2 {
		t.Errorf("prior active prediction was disturbed: %+v", active)
	}
}

func TestChurnRunAppliesTierThresholds(t *testing.T) {
	predictor := &fakeChurnPredictor{scores: map[uint]float64{1: 0.79, 2: 0.8, 3: 0.4, 4: 0.39}}
	uc, _ := newChurnFixture(activeClients(4), predictor)

	result, err := uc.Run(context.Background(), models.ChurnRunRequest{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[uint]string{1: models.TierHigh, 2: models.TierCritical, 3: models.TierMedium, 4: models.TierLow}
	for _, p := range result.Predictions {
		if p.Tier != want[p.ClientID] {
			t.Errorf("client %d score %.2f: tier = %s, want %s", p.ClientID, p.Score, p.Tier, want[p.ClientID])
		}
	}
}

func TestChurnListFiltersByTier(t *testing.T) {
	uc, store := newChurnFixture(nil, &fakeChurnPredictor{})
	store.rows = []models.ChurnPrediction{
		{ClientID: 1, Score: 0.9, Tier: models.TierCritical, Active: true},
		{ClientID: 2, Score: 0.65, Tier: models.TierHigh, Active: true},
		{ClientID: 3, Score: 0.1, Tier: models.TierLow, Active: true},
		{ClientID: 4, Score: 0.95, Tier: models.TierCritical, Active: false},
	}

	result, err := uc.List(context.Background(), models.ChurnListRequest{Tier: models.TierHigh, Limit: 100})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2 (HIGH and above, active only)", len(result.Predictions))
	}
}
