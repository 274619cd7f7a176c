package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "sweetshop/docs"
	"sweetshop/pkg/logger"
	"sweetshop/pkg/metrics"
	"sweetshop/pkg/otel"
	"sweetshop/pkg/shop"
	"sweetshop/pkg/sweet"
	pgsweet "sweetshop/pkg/sweet/postgres"
	"sweetshop/pkg/user"
	pguser "sweetshop/pkg/user/postgres"
)

var (
	redisClient *redis.Client
	sweets      sweet.Repository
	users       user.Repository
	store       *shop.Shop
	log         *logger.Logger
	tracer      trace.Tracer
)

type ctxKey int

const userKey ctxKey = 1

const schema = `
CREATE TABLE IF NOT EXISTS sweets (
    position   BIGSERIAL,
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL,
    price      DOUBLE PRECISION NOT NULL,
    quantity   INT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
    username   TEXT PRIMARY KEY,
    password   TEXT NOT NULL,
    role       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS purchases (
    position     BIGSERIAL,
    order_id     TEXT PRIMARY KEY,
    username     TEXT NOT NULL REFERENCES users(username),
    sweet_id     TEXT NOT NULL,
    name         TEXT NOT NULL,
    quantity     INT NOT NULL,
    unit_price   DOUBLE PRECISION NOT NULL,
    total        DOUBLE PRECISION NOT NULL,
    purchased_at TIMESTAMPTZ NOT NULL
);`

// @title Sweet Shop API
// @version 1.0
// @description API for managing sweet inventory and purchases
// @host localhost:8080
// @BasePath /
func main() {
	log = logger.New(os.Stdout, logger.LevelInfo, "sweetshop", otel.GetTraceID)

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "sweetshop", Host: os.Getenv("OTEL_HOST"), Probability: 1.0})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		return
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("sweetshop")

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Error(context.Background(), "db connect", "error", err)
		os.Exit(1)
	}
	if _, err := db.Exec(schema); err != nil {
		log.Error(context.Background(), "create tables", "error", err)
		os.Exit(1)
	}
	sweets = pgsweet.New(db)
	users = pguser.New(db)
	store = shop.New(sweets, users)

	redisClient = redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})

	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(traceMiddleware)
	r.HandleFunc("/register", registerHandler).Methods(http.MethodPost)
	r.HandleFunc("/login", loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/sweets", listSweetsHandler).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/logout", logoutHandler).Methods(http.MethodPost)
	api.HandleFunc("/sweets", addSweetHandler).Methods(http.MethodPost)
	api.HandleFunc("/sweets/{id}", deleteSweetHandler).Methods(http.MethodDelete)
	api.HandleFunc("/sweets/{id}/restock", restockHandler).Methods(http.MethodPost)
	api.HandleFunc("/sweets/{id}/purchase", purchaseHandler).Methods(http.MethodPost)
	api.HandleFunc("/history", historyHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info(context.Background(), "listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error(context.Background(), "server closed", "error", err)
	}
}

// credentials carries a username/password pair.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerHandler creates a new customer account.
// @Summary Register
// @Accept json
// @Param creds body credentials true "Credentials"
// @Success 201
// @Router /register [post]
func registerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "registerHandler")
	defer span.End()

	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := store.Register(ctx, req.Username, req.Password); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// loginHandler verifies credentials and creates a session.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Param creds body credentials true "Credentials"
// @Success 200
// @Router /login [post]
func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}
	u, err := store.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	sid := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := redisClient.Set(ctx, "session:"+sid, u.Username, time.Hour).Err(); err != nil {
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session_id", Value: sid, Path: "/", Expires: time.Now().Add(time.Hour), HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

// logoutHandler deletes the current session.
// @Summary Logout
// @Success 204
// @Security ApiKeyAuth
// @Router /logout [post]
func logoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "logoutHandler")
	defer span.End()

	if c, err := r.Cookie("session_id"); err == nil {
		redisClient.Del(ctx, "session:"+c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

// authMiddleware ensures a valid session exists and stores the
// username in the request context.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		username, err := redisClient.Get(r.Context(), "session:"+c.Value).Result()
		if err != nil || username == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sweetRequest carries the fields for adding a sweet.
type sweetRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// addSweetHandler adds a sweet to the inventory.
// @Summary Add sweet
// @Accept json
// @Produce json
// @Param sweet body sweetRequest true "Sweet"
// @Success 201 {object} sweet.Sweet
// @Security ApiKeyAuth
// @Router /sweets [post]
func addSweetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addSweetHandler")
	defer span.End()

	var req sweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := sweet.New(req.Name, req.Category, req.Price, req.Quantity)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := sweets.Create(ctx, s); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// listSweetsHandler lists, searches or sorts sweets depending on the
// query parameters.
// @Summary List sweets
// @Produce json
// @Param name query string false "Name substring"
// @Param category query string false "Category substring"
// @Param min query number false "Minimum price"
// @Param max query number false "Maximum price"
// @Param sort query string false "Sort field: name, price or quantity"
// @Success 200 {array} sweet.Sweet
// @Router /sweets [get]
func listSweetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listSweetsHandler")
	defer span.End()

	q := r.URL.Query()
	var (
		result []sweet.Sweet
		err    error
	)
	switch {
	case q.Get("name") != "":
		result, err = sweets.SearchByName(ctx, q.Get("name"))
	case q.Get("category") != "":
		result, err = sweets.SearchByCategory(ctx, q.Get("category"))
	case q.Get("min") != "" || q.Get("max") != "":
		min, perr := strconv.ParseFloat(q.Get("min"), 64)
		if perr != nil {
			http.Error(w, "invalid min price", http.StatusBadRequest)
			return
		}
		max, perr := strconv.ParseFloat(q.Get("max"), 64)
		if perr != nil {
			http.Error(w, "invalid max price", http.StatusBadRequest)
			return
		}
		result, err = sweets.SearchByPriceRange(ctx, min, max)
	case q.Get("sort") != "":
		result, err = sweets.SortBy(ctx, q.Get("sort"))
	default:
		result, err = sweets.List(ctx)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// deleteSweetHandler removes a sweet.
// @Summary Delete sweet
// @Param id path string true "Sweet ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /sweets/{id} [delete]
func deleteSweetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteSweetHandler")
	defer span.End()

	if err := sweets.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// amountRequest carries a stock adjustment amount.
type amountRequest struct {
	Amount int `json:"amount"`
}

// restockHandler increases the stock of a sweet.
// @Summary Restock sweet
// @Accept json
// @Param id path string true "Sweet ID"
// @Param amount body amountRequest true "Amount"
// @Success 200
// @Security ApiKeyAuth
// @Router /sweets/{id}/restock [post]
func restockHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "restockHandler")
	defer span.End()

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := sweets.Restock(ctx, mux.Vars(r)["id"], req.Amount); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// purchaseRequest carries the quantity to purchase.
type purchaseRequest struct {
	Quantity int `json:"quantity"`
}

// purchaseResponse returns the settled order id.
type purchaseResponse struct {
	OrderID string `json:"order_id"`
}

// purchaseHandler settles a purchase for the logged-in user.
// @Summary Purchase sweet
// @Accept json
// @Produce json
// @Param id path string true "Sweet ID"
// @Param quantity body purchaseRequest true "Quantity"
// @Success 200 {object} purchaseResponse
// @Security ApiKeyAuth
// @Router /sweets/{id}/purchase [post]
func purchaseHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "purchaseHandler")
	defer span.End()

	username, _ := ctx.Value(userKey).(string)
	req := purchaseRequest{Quantity: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	orderID, err := store.Purchase(ctx, username, mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchaseResponse{OrderID: orderID})
}

// historyHandler returns the logged-in user's purchase history.
// @Summary Purchase history
// @Produce json
// @Success 200 {array} user.Purchase
// @Security ApiKeyAuth
// @Router /history [get]
func historyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "historyHandler")
	defer span.End()

	username, _ := ctx.Value(userKey).(string)
	history, err := users.PurchaseHistory(ctx, username)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sweet.ErrNotFound), errors.Is(err, user.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, sweet.ErrDuplicateID), errors.Is(err, user.ErrDuplicateUsername),
		errors.Is(err, sweet.ErrInsufficientStock):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, sweet.ErrInvalidInput), errors.Is(err, sweet.ErrInvalidField),
		errors.Is(err, shop.ErrInvalidQuantity), errors.Is(err, shop.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error(ctx, "request failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
