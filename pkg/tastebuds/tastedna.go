package tastebuds

import "context"

type quizSubmitRequest struct {
	Answers []QuizAnswer `json:"answers"`
}

// Quiz fetches the taste-preference questionnaire.
func (c *Client) Quiz(ctx context.Context) (*QuizResponse, error) {
	var out QuizResponse
	if err := c.get(ctx, "quiz", "/taste-dna/quiz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitQuiz sends the tagged answers; the backend computes the Taste DNA.
func (c *Client) SubmitQuiz(ctx context.Context, answers []QuizAnswer) (*QuizSubmitResponse, error) {
	var out QuizSubmitResponse
	if err := c.post(ctx, "submit_quiz", "/taste-dna/quiz/submit", nil, quizSubmitRequest{Answers: answers}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TasteDNAProfile returns the current user's scored preference profile.
func (c *Client) TasteDNAProfile(ctx context.Context) (*TasteDNA, error) {
	var out TasteDNA
	if err := c.get(ctx, "taste_dna", "/taste-dna/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TasteDNACard returns the shareable card rendering of the profile.
func (c *Client) TasteDNACard(ctx context.Context) (*TasteDNACard, error) {
	var out TasteDNACard
	if err := c.get(ctx, "taste_dna_card", "/taste-dna/card", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
