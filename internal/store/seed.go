package store

import (
	"time"

	"github.com/tgienger/kadai/internal/models"
)

func endOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 0, time.Local)
}

// SeedSubjects returns the demonstration dataset loaded on a fresh start
func SeedSubjects() []models.Subject {
	return []models.Subject{
		{
			ID:            "subj-1",
			Name:          "高度なWeb開発",
			ProfessorName: "エブリン・リード博士",
			Tasks: []models.Task{
				{
					ID:          "task-1-1",
					Title:       "プロジェクト提案",
					Deadline:    endOfDay(2024, time.September, 15),
					Status:      models.StatusCompleted,
					IsCompleted: true,
					References:  []models.Reference{{ID: "ref-1", Title: "MDN Web Docs", URL: "https://developer.mozilla.org"}},
					Memos:       []models.Memo{{ID: "memo-1", Content: "リアクティブUIコンポーネントに焦点を当てる。"}},
				},
				{
					ID:       "task-1-2",
					Title:    "API統合",
					Deadline: endOfDay(2024, time.October, 1),
					Status:   models.StatusInProgress,
				},
				{
					ID:       "task-1-3",
					Title:    "最終プロジェクト提出",
					Deadline: endOfDay(2024, time.October, 20),
					Status:   models.StatusNotStarted,
				},
			},
		},
		{
			ID:            "subj-2",
			Name:          "機械学習の基礎",
			ProfessorName: "アラン・グラント教授",
			Tasks: []models.Task{
				{
					ID:         "task-2-1",
					Title:      "線形回帰の実装",
					Deadline:   endOfDay(2024, time.September, 22),
					Status:     models.StatusReviewing,
					References: []models.Reference{{ID: "ref-2", Title: "Scikit-learn Docs", URL: "https://scikit-learn.org/"}},
					Memos:      []models.Memo{{ID: "memo-2", Content: "データを正規化することを忘れない。"}},
				},
				{
					ID:       "task-2-2",
					Title:    "文献レビュー：ニューラルネットワーク",
					Deadline: endOfDay(2024, time.November, 5),
					Status:   models.StatusNotStarted,
				},
			},
		},
		{
			ID:            "subj-3",
			Name:          "データ構造とアルゴリズム",
			ProfessorName: "イアン・マルコム博士",
		},
	}
}
