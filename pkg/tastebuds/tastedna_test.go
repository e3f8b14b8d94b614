package tastebuds

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuiz(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/taste-dna/quiz", r.URL.Path)
		w.Write([]byte(`{"questions": [{"id": "q1", "type": "slider", "question": "How adventurous?"}]}`))
	})

	resp, err := client.Quiz(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, QuestionSlider, resp.Questions[0].Type)
}

func TestSubmitQuiz(t *testing.T) {
	var gotBody struct {
		Answers []map[string]interface{} `json:"answers"`
	}
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/taste-dna/quiz/submit", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{
			"message": "Taste DNA created",
			"taste_dna": {
				"adventure_score": 0.8, "spice_tolerance": 0.6,
				"price_sensitivity": 0.4, "cuisine_diversity": 0.7,
				"preferred_cuisines": ["thai", "korean"]
			}
		}`))
	})

	value := 8.0
	answers := []QuizAnswer{
		{QuestionID: "q1", AnswerType: "slider", Value: &value},
		{QuestionID: "q2", AnswerType: "multiple_choice", Choice: "spicy"},
	}

	resp, err := client.SubmitQuiz(context.Background(), answers)
	require.NoError(t, err)

	require.Len(t, gotBody.Answers, 2)
	assert.Equal(t, "q1", gotBody.Answers[0]["question_id"])
	assert.Equal(t, "spicy", gotBody.Answers[1]["choice"])

	assert.Equal(t, "Taste DNA created", resp.Message)
	assert.InDelta(t, 0.8, resp.TasteDNA.AdventureScore, 1e-9)
	assert.Equal(t, []string{"thai", "korean"}, resp.TasteDNA.PreferredCuisines)
}

func TestTasteDNAProfile(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/taste-dna/profile", r.URL.Path)
		w.Write([]byte(`{
			"adventure_score": 0.75, "spice_tolerance": 0.5,
			"price_sensitivity": 0.3, "preferred_cuisines": ["mexican"],
			"dietary_restrictions": ["vegetarian"]
		}`))
	})

	dna, err := client.TasteDNAProfile(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.75, dna.AdventureScore, 1e-9)
	assert.Equal(t, []string{"vegetarian"}, dna.DietaryRestrictions)
}

func TestTasteDNACard(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/taste-dna/card", r.URL.Path)
		w.Write([]byte(`{
			"user_name": "A", "adventure_score": 0.8, "spice_tolerance": 0.6,
			"top_cuisines": ["thai"], "card_image_url": "http://x/card.png",
			"share_text": "My Taste DNA: 80% adventurous!"
		}`))
	})

	card, err := client.TasteDNACard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", card.UserName)
	assert.Contains(t, card.ShareText, "80%")
}
