package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	businessRepo "salonhub/database/repository/business"
	customerRepo "salonhub/database/repository/customer"
	"salonhub/models"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerRepo struct {
	customerRepo.CustomerRepository
	byTokenHash map[string]*models.Customer
	lookups     int
}

func (f *fakeCustomerRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Customer, error) {
	f.lookups++
	c, ok := f.byTokenHash[tokenHash]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

type fakeBusinessRepo struct {
	businessRepo.BusinessRepository
	byTokenHash map[string]*models.Business
}

func (f *fakeBusinessRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Business, error) {
	b, ok := f.byTokenHash[tokenHash]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return b, nil
}

func issue(t *testing.T, subject, role string) string {
	t.Helper()
	token, err := utils.GenerateToken(subject, subject+"@example.com", role, time.Hour)
	require.NoError(t, err)
	return token
}

func runProtected(mw gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	var captured *gin.Context

	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w, captured
}

func TestCustomerAuthAcceptsStoredToken(t *testing.T) {
	token := issue(t, "cust1", "customer")
	repo := &fakeCustomerRepo{byTokenHash: map[string]*models.Customer{
		utils.HashToken(token): {ID: "cust1"},
	}}

	w, c := runProtected(JWTAuthCustomerMiddleware(repo), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cust1", c.GetString("customerID"))
	assert.False(t, c.GetBool("isAdmin"))
	assert.Equal(t, 1, repo.lookups, "no cache configured, so the store is consulted")
}

func TestCustomerAuthRejectsRevokedToken(t *testing.T) {
	token := issue(t, "cust1", "customer")
	repo := &fakeCustomerRepo{byTokenHash: map[string]*models.Customer{}}

	w, _ := runProtected(JWTAuthCustomerMiddleware(repo), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerAuthRejectsWrongRole(t *testing.T) {
	token := issue(t, "biz1", "business")
	repo := &fakeCustomerRepo{byTokenHash: map[string]*models.Customer{
		utils.HashToken(token): {ID: "biz1"},
	}}

	w, _ := runProtected(JWTAuthCustomerMiddleware(repo), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, repo.lookups, "role mismatch is decided from the claims alone")
}

func TestCustomerAuthRejectsGarbage(t *testing.T) {
	repo := &fakeCustomerRepo{byTokenHash: map[string]*models.Customer{}}

	for _, header := range []string{"", "Basic abc", "Bearer not-a-jwt"} {
		w, _ := runProtected(JWTAuthCustomerMiddleware(repo), header)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestBusinessAuthAcceptsStoredToken(t *testing.T) {
	token := issue(t, "biz1", "business")
	repo := &fakeBusinessRepo{byTokenHash: map[string]*models.Business{
		utils.HashToken(token): {ID: "biz1"},
	}}

	w, c := runProtected(JWTAuthBusinessMiddleware(repo), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "biz1", c.GetString("businessID"))
}

func TestAdminAuthRequiresAdminRole(t *testing.T) {
	customerToken := issue(t, "cust1", "customer")
	adminToken := issue(t, "root", "admin")
	repo := &fakeCustomerRepo{byTokenHash: map[string]*models.Customer{
		utils.HashToken(customerToken): {ID: "cust1"},
		utils.HashToken(adminToken):    {ID: "root", Admin: true},
	}}

	w, _ := runProtected(JWTAuthAdminMiddleware(repo), "Bearer "+customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, c := runProtected(JWTAuthAdminMiddleware(repo), "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, c.GetBool("isAdmin"))
}

func TestAdminAuthRejectsStaleAdminClaim(t *testing.T) {
	// The token says admin but the account lost the flag since issue.
	token := issue(t, "demoted", "admin")
	repo := &fakeCustomerRepo{byTokenHash: map[string]*models.Customer{
		utils.HashToken(token): {ID: "demoted", Admin: false},
	}}

	w, _ := runProtected(JWTAuthAdminMiddleware(repo), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
