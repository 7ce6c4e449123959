package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkhangg/gostore/internal/models"
)

func getCart(t *testing.T, env *testEnv, token string) cartResponse {
	t.Helper()

	rec := env.doJSON(http.MethodGet, "/api/cart", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetCart_EmptyCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndLogin("user@example.com")

	cart := getCart(t, env, token)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestAddToCart_IncrementsExistingLine(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndLogin("user@example.com")
	product := env.seedProduct("Mug", 4.50)

	rec := env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": product.ID,
		"quantity":   2,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": product.ID,
		"quantity":   3,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 5, item.Quantity)

	cart := getCart(t, env, token)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 22.50, cart.Total)
}

func TestAddToCart_DefaultsQuantity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndLogin("user@example.com")
	product := env.seedProduct("Mug", 4.50)

	rec := env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": product.ID,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 1, item.Quantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndLogin("user@example.com")

	rec := env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": 42,
	}, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndLogin("user@example.com")
	product := env.seedProduct("Mug", 4.50)

	rec := env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": product.ID,
		"quantity":   5,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = env.doJSON(http.MethodPut, fmt.Sprintf("/api/cart/%d", item.ID), map[string]any{
		"quantity": 2,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := getCart(t, env, token)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateQuantity_NonPositiveRemovesLine(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndLogin("user@example.com")
	product := env.seedProduct("Mug", 4.50)

	rec := env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": product.ID,
		"quantity":   5,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = env.doJSON(http.MethodPut, fmt.Sprintf("/api/cart/%d", item.ID), map[string]any{
		"quantity": 0,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := getCart(t, env, token)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem_ForeignLineIsNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ownerToken := env.registerAndLogin("owner@example.com")
	otherToken := env.registerAndLogin("other@example.com")
	product := env.seedProduct("Mug", 4.50)

	rec := env.doJSON(http.MethodPost, "/api/cart", map[string]any{
		"product_id": product.ID,
	}, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))

	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/api/cart/%d", item.ID), nil, otherToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The owner still has the line.
	cart := getCart(t, env, ownerToken)
	require.Len(t, cart.Items, 1)
}
