package survey

import (
	"behavior-go/internal/models"
)

// spsrqQuestions returns n reward questions followed by n punishment
// questions.
func spsrqQuestions(n int) []models.Question {
	questions := make([]models.Question, 0, 2*n)
	for i := 1; i <= n; i++ {
		questions = append(questions, models.Question{ID: i, Text: "reward item", Category: models.CategoryReward})
	}
	for i := n + 1; i <= 2*n; i++ {
		questions = append(questions, models.Question{ID: i, Text: "punishment item", Category: models.CategoryPunishment})
	}
	return questions
}

func followUpQuestions(texts ...string) []models.Question {
	questions := make([]models.Question, len(texts))
	for i, text := range texts {
		questions[i] = models.Question{ID: i + 1, Text: text}
	}
	return questions
}

// uniformAnswers rates every reward item with reward and every punishment
// item with punishment.
func uniformAnswers(questions []models.Question, reward, punishment int) map[string]int {
	answers := make(map[string]int, len(questions))
	for _, q := range questions {
		rating := reward
		if q.Category == models.CategoryPunishment {
			rating = punishment
		}
		answers[q.QualifiedID(models.SetSPSRQ)] = rating
	}
	return answers
}

func testBank() *models.Bank {
	return models.NewBankFromQuestions(map[models.QuestionSet][]models.Question{
		models.SetSPSRQ: spsrqQuestions(10),
		models.SetRSS:   followUpQuestions("Music", "Friends", "Food", "Games", "Sleep", "Travel", "Books"),
		models.SetASQ:   followUpQuestions("Noise", "Crowds", "Waiting"),
	})
}
