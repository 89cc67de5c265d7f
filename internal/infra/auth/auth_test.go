package auth

import (
	"testing"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// TestTokenRoundTrip выпущенный токен проходит проверку и сохраняет
// данные сессии.
func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{ID: 7, Username: "teacher", IsAdmin: true}

	token, err := GenerateToken("secret", time.Hour, user)
	if err != nil {
		t.Fatalf("GenerateToken вернул ошибку: %v", err)
	}

	claims, err := VerifyToken("secret", token)
	if err != nil {
		t.Fatalf("VerifyToken вернул ошибку: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "teacher" || !claims.IsAdmin {
		t.Errorf("Данные сессии искажены: %+v", claims)
	}
}

// TestVerifyToken_BearerPrefix префикс Bearer из заголовка отбрасывается.
func TestVerifyToken_BearerPrefix(t *testing.T) {
	user := &model.User{ID: 1, Username: "learner"}

	token, err := GenerateToken("secret", time.Hour, user)
	if err != nil {
		t.Fatalf("GenerateToken вернул ошибку: %v", err)
	}

	if _, err := VerifyToken("secret", "Bearer "+token); err != nil {
		t.Errorf("Токен с префиксом Bearer должен проходить проверку, получено %v", err)
	}
}

// TestVerifyToken_WrongSecret токен с другим секретом отклоняется.
func TestVerifyToken_WrongSecret(t *testing.T) {
	user := &model.User{ID: 1, Username: "learner"}

	token, err := GenerateToken("secret", time.Hour, user)
	if err != nil {
		t.Fatalf("GenerateToken вернул ошибку: %v", err)
	}

	if _, err := VerifyToken("other-secret", token); err == nil {
		t.Error("Токен с другим секретом не должен проходить проверку")
	}
}

// TestVerifyToken_Expired просроченный токен отклоняется.
func TestVerifyToken_Expired(t *testing.T) {
	user := &model.User{ID: 1, Username: "learner"}

	token, err := GenerateToken("secret", -time.Minute, user)
	if err != nil {
		t.Fatalf("GenerateToken вернул ошибку: %v", err)
	}

	if _, err := VerifyToken("secret", token); err == nil {
		t.Error("Просроченный токен не должен проходить проверку")
	}
}
