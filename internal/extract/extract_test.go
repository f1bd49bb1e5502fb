package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatedesk/intake/internal/config"
	"github.com/estatedesk/intake/pkg/catalog"
)

func TestNewSelectsExtractor(t *testing.T) {
	assert.IsType(t, &OfflineExtractor{}, New(config.LLMConfig{Enabled: false}))
	assert.IsType(t, &VisionExtractor{}, New(config.LLMConfig{Enabled: true, Endpoint: "http://localhost:1"}))
}

func TestOfflineExtractNoHints(t *testing.T) {
	e := NewOffline()

	bundle, err := e.Extract(context.Background(), "est-100",
		[]string{"/cases/est-100/01.jpg", "/cases/est-100/02.jpg"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "est-100", bundle.CaseID)
	assert.Equal(t, "est-100", bundle.LotMetadata.LotID)
	assert.Equal(t, catalog.ListStrategyIndividual, bundle.LotMetadata.ListStrategy)

	require.Len(t, bundle.Items, 1)
	item := bundle.Items[0]
	assert.Equal(t, "est-100-001", item.SKU)
	assert.Equal(t, "Unlabeled Item", item.Title)
	assert.Equal(t, catalog.CategoryGeneric, item.CategoryHint)
	assert.Equal(t, catalog.ConditionGood, item.ConditionGrade)
	require.Len(t, item.Photos, 2)
	assert.Equal(t, catalog.MediaSourceFile, item.Photos[0].Source)
	assert.Equal(t, "Image 1", item.Photos[0].Alt)
	assert.Equal(t, "Image 2", item.Photos[1].Alt)

	require.NoError(t, bundle.Validate())
}

func TestOfflineExtractSingleItemHints(t *testing.T) {
	tests := []struct {
		name          string
		hints         map[string]any
		wantTitle     string
		wantCategory  catalog.Category
		wantCondition catalog.Condition
		check         func(t *testing.T, item catalog.Item)
	}{
		{
			name: "plain fields",
			hints: map[string]any{
				"title":           "Canon AE-1 Camera",
				"brand":           "Canon",
				"category_hint":   "electronics",
				"condition_grade": "Very Good",
			},
			wantTitle:     "Canon AE-1 Camera",
			wantCategory:  catalog.CategoryElectronics,
			wantCondition: catalog.ConditionVeryGood,
			check: func(t *testing.T, item catalog.Item) {
				assert.Equal(t, "Canon", item.Brand)
			},
		},
		{
			name: "invalid category and condition fall back",
			hints: map[string]any{
				"title":           "Mystery Box",
				"category_hint":   "furniture",
				"condition_grade": "Mint",
			},
			wantTitle:     "Mystery Box",
			wantCategory:  catalog.CategoryGeneric,
			wantCondition: catalog.ConditionGood,
		},
		{
			name: "book block decoded and overrides category hint",
			hints: map[string]any{
				"title":         "The Hobbit",
				"category_hint": "electronics",
				"book": map[string]any{
					"author":  "J.R.R. Tolkien",
					"isbn_13": "9780261103344",
				},
			},
			wantTitle:     "The Hobbit",
			wantCategory:  catalog.CategoryBook,
			wantCondition: catalog.ConditionGood,
			check: func(t *testing.T, item catalog.Item) {
				require.NotNil(t, item.Book)
				assert.Equal(t, "J.R.R. Tolkien", item.Book.Author)
				assert.Equal(t, "9780261103344", item.Book.ISBN13)
			},
		},
		{
			name: "category block alone marks a single item",
			hints: map[string]any{
				"vehicle": map[string]any{"make": "Honda", "model": "Civic", "year": 2004},
			},
			wantTitle:     "Item from Hints",
			wantCategory:  catalog.CategoryVehicle,
			wantCondition: catalog.ConditionGood,
			check: func(t *testing.T, item catalog.Item) {
				require.NotNil(t, item.Vehicle)
				assert.Equal(t, "Honda", item.Vehicle.Make)
				assert.Equal(t, 2004, item.Vehicle.Year)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := NewOffline().Extract(context.Background(), "est-200", nil, tt.hints)

			require.NoError(t, err)
			require.Len(t, bundle.Items, 1)
			item := bundle.Items[0]
			assert.Equal(t, tt.wantTitle, item.Title)
			assert.Equal(t, tt.wantCategory, item.CategoryHint)
			assert.Equal(t, tt.wantCondition, item.ConditionGrade)
			require.NoError(t, bundle.Validate())
			if tt.check != nil {
				tt.check(t, item)
			}
		})
	}
}

func TestOfflineExtractLooseHintsAreNotAnItem(t *testing.T) {
	bundle, err := NewOffline().Extract(context.Background(), "est-300", nil,
		map[string]any{"location_zip": "97210", "notes": "garage shelf"})

	require.NoError(t, err)
	require.Len(t, bundle.Items, 1)
	assert.Equal(t, "Unlabeled Item", bundle.Items[0].Title)
	assert.Equal(t, catalog.CategoryGeneric, bundle.Items[0].CategoryHint)
}

func TestVisionExtract(t *testing.T) {
	remote := catalog.IntakeBundle{
		CaseID: "wrong-case-id",
		Items: []catalog.Item{{
			SKU:            "est-400-001",
			Title:          "Rolex Submariner",
			CategoryHint:   catalog.CategoryGeneric,
			ConditionGrade: catalog.ConditionExcellent,
		}},
	}

	var gotReq visionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		require.NoError(t, json.NewEncoder(w).Encode(remote))
	}))
	defer server.Close()

	e := NewVision(config.LLMConfig{Endpoint: server.URL, Model: "gpt-4o-mini"})
	bundle, err := e.Extract(context.Background(), "est-400", nil,
		map[string]any{"title": "Watch"})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, "est-400", gotReq.CaseID)
	// The service's case_id is overridden and lot metadata defaulted.
	assert.Equal(t, "est-400", bundle.CaseID)
	assert.Equal(t, "est-400", bundle.LotMetadata.LotID)
	assert.Equal(t, catalog.ListStrategyIndividual, bundle.LotMetadata.ListStrategy)
	require.Len(t, bundle.Items, 1)
	assert.Equal(t, "Rolex Submariner", bundle.Items[0].Title)
}

func TestVisionExtractFallsBackToOffline(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "invalid bundle",
			handler: func(w http.ResponseWriter, r *http.Request) {
				// Duplicate SKUs fail bundle validation.
				json.NewEncoder(w).Encode(catalog.IntakeBundle{
					CaseID: "est-500",
					Items: []catalog.Item{
						{SKU: "dup", Title: "A", CategoryHint: catalog.CategoryGeneric, ConditionGrade: catalog.ConditionGood},
						{SKU: "dup", Title: "B", CategoryHint: catalog.CategoryGeneric, ConditionGrade: catalog.ConditionGood},
					},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			e := NewVision(config.LLMConfig{Endpoint: server.URL, Model: "gpt-4o-mini"})
			bundle, err := e.Extract(context.Background(), "est-500", nil,
				map[string]any{"title": "Hinted Title"})

			require.NoError(t, err)
			require.Len(t, bundle.Items, 1)
			assert.Equal(t, "Hinted Title", bundle.Items[0].Title)
			assert.Equal(t, "Generated offline", bundle.LotMetadata.Notes)
		})
	}
}

func TestVisionExtractUnreachableEndpoint(t *testing.T) {
	e := NewVision(config.LLMConfig{Endpoint: "http://127.0.0.1:1", Model: "gpt-4o-mini"})

	bundle, err := e.Extract(context.Background(), "est-600", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "est-600", bundle.CaseID)
	assert.Equal(t, "Generated offline", bundle.LotMetadata.Notes)
}
