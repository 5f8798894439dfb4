package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizzeria-app/internal/auth"
	"pizzeria-app/internal/handlers"
	"pizzeria-app/internal/httpx"
	"pizzeria-app/internal/models"
	"pizzeria-app/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth double-checks that the session's admin still exists.
	auth.SetAdminVerifier(func(_ context.Context, id uint) bool {
		var count int64
		if err := db.Model(&models.Administrator{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	adminSvc := services.NewAdminService(db, log)
	customerSvc := services.NewCustomerService(db, log)
	menuSvc := services.NewMenuService(db, log)
	orderSvc := services.NewOrderService(db, log)
	ledgerSvc := services.NewLedgerService(db, log)
	profileSvc := services.NewProfileService(db, log)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(adminSvc)
	authHandler.Register(mux)

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.RequireAuth(h)
	}

	// Menu categories
	mh := handlers.NewMenuHandler(menuSvc)
	mux.Handle("/menu/categories", methodSwitch(methodMap{
		http.MethodGet:  http.HandlerFunc(mh.ListCategories), // public: the storefront menu
		http.MethodPost: protected(mh.CreateCategory),
	}))
	mux.Handle("/menu/categories/update", protected(mh.UpdateCategory))
	mux.Handle("/menu/categories/delete", protected(mh.DeleteCategory))

	// Menu items
	mux.Handle("/menu/items", methodSwitch(methodMap{
		http.MethodGet:  http.HandlerFunc(mh.ListItems),
		http.MethodPost: protected(mh.CreateItem),
	}))
	mux.Handle("/menu/items/update", protected(mh.UpdateItem))
	mux.Handle("/menu/items/delete", protected(mh.DeleteItem))

	// Customers (back office only)
	ch := handlers.NewCustomerHandler(customerSvc)
	mux.Handle("/customers", methodSwitch(methodMap{
		http.MethodGet:  protected(ch.List),
		http.MethodPost: protected(ch.Create),
	}))
	mux.Handle("/customers/get", protected(ch.Get))
	mux.Handle("/customers/update", protected(ch.Update))
	mux.Handle("/customers/delete", protected(ch.Delete))

	// Orders: placement is public, management needs an admin session.
	oh := handlers.NewOrderHandler(orderSvc)
	mux.Handle("/orders", methodSwitch(methodMap{
		http.MethodGet:  protected(oh.List),
		http.MethodPost: http.HandlerFunc(oh.Create),
	}))
	mux.Handle("/orders/get", protected(oh.Get))
	mux.Handle("/orders/status", protected(oh.UpdateStatus))
	mux.Handle("/orders/delete", protected(oh.Delete))

	// Ledger
	lh := handlers.NewLedgerHandler(ledgerSvc)
	mux.Handle("/ledger", methodSwitch(methodMap{
		http.MethodGet:  protected(lh.List),
		http.MethodPost: protected(lh.Create),
	}))
	mux.Handle("/ledger/delete", protected(lh.Delete))
	mux.Handle("/ledger/summary", protected(lh.Summary))

	// Pizzeria profile: public read, admin write.
	ph := handlers.NewProfileHandler(profileSvc)
	mux.Handle("/profile", methodSwitch(methodMap{
		http.MethodGet:  http.HandlerFunc(ph.Get),
		http.MethodPost: protected(ph.Ensure),
	}))
	mux.Handle("/profile/update", protected(ph.Update))

	// Administrators
	ah := handlers.NewAdminHandler(adminSvc)
	mux.Handle("/admins", methodSwitch(methodMap{
		http.MethodGet:  protected(ah.List),
		http.MethodPost: protected(ah.Create),
	}))
	mux.Handle("/admins/password", protected(ah.ChangePassword))
	mux.Handle("/admins/delete", protected(ah.Delete))

	return auth.Middleware(withRecover(withLogging(mux, log)))
}

type methodMap map[string]http.Handler

func methodSwitch(m methodMap) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		allow := ""
		for method := range m {
			if allow != "" {
				allow += ","
			}
			allow += method
		}
		w.Header().Set("Allow", allow)
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
}

func withLogging(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
