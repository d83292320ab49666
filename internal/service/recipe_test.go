package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/recipeshare-go/internal/model"
	"github.com/recipeshare/recipeshare-go/internal/repository"
)

func newRecipeService(t *testing.T) (*RecipeService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRecipeService(repository.NewRecipeRepository(db), repository.NewCommentRepository(db)), mock
}

func mockRecipeRow(id, userID int64, title string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "title", "ingredients", "instructions", "image_url", "user_id", "created_at", "updated_at"}).
		AddRow(id, title, "egg,flour", "mix", "", userID, now, now)
}

func TestRecipeCreateMissingFields(t *testing.T) {
	svc, _ := newRecipeService(t)

	tests := []struct {
		name string
		req  model.CreateRecipeRequest
		want error
	}{
		{"no title", model.CreateRecipeRequest{Ingredients: "egg", Instructions: "mix"}, ErrTitleRequired},
		{"no ingredients", model.CreateRecipeRequest{Title: "Cake", Instructions: "mix"}, ErrIngredientsRequired},
		{"no instructions", model.CreateRecipeRequest{Title: "Cake", Ingredients: "egg"}, ErrInstructionsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecipeCreateOwnerIsCaller(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectExec("INSERT INTO recipes").
		WithArgs("Cake", "egg,flour", "mix", "", int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.Create(context.Background(), 42, model.CreateRecipeRequest{
		Title:        "Cake",
		Ingredients:  "egg,flour",
		Instructions: "mix",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, "egg,flour", resp.Ingredients)
}

func TestRecipeUpdateByNonOwnerForbidden(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(mockRecipeRow(1, 1, "Cake"))

	title := "Stolen"
	_, err := svc.Update(context.Background(), 2, 1, model.UpdateRecipeRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecipeUpdatePartialKeepsUnsetFields(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(mockRecipeRow(1, 1, "Cake"))

	// Only the title changes; ingredients, instructions, image stay as loaded.
	mock.ExpectExec("UPDATE recipes SET").
		WithArgs("Better Cake", "egg,flour", "mix", "", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	title := "Better Cake"
	resp, err := svc.Update(context.Background(), 1, 1, model.UpdateRecipeRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Better Cake", resp.Title)
	assert.Equal(t, "egg,flour", resp.Ingredients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeDeleteByNonOwnerForbidden(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(mockRecipeRow(1, 1, "Cake"))

	err := svc.Delete(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecipeDeleteCascadesCommentsFirst(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(mockRecipeRow(1, 1, "Cake"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE recipe_id = ?`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipes WHERE id = ?`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeDeleteMissingRecipe(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "ingredients", "instructions", "image_url", "user_id", "created_at", "updated_at"}))

	err := svc.Delete(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeSearchReturnsMatches(t *testing.T) {
	svc, mock := newRecipeService(t)

	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE LOWER").
		WithArgs("%Choc%").
		WillReturnRows(mockRecipeRow(1, 1, "Chocolate Cake"))

	recipes, err := svc.Search(context.Background(), "Choc")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Chocolate Cake", recipes[0].Title)
}
