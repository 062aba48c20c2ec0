package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/repository"
	"github.com/peoplecare/hrportal/internal/transport/http/handler"
	"github.com/peoplecare/hrportal/internal/transport/http/middleware"
	"github.com/peoplecare/hrportal/internal/usecase"
)

type fakeUserRepo struct {
	create           func(ctx context.Context, u *domain.User) (*domain.User, error)
	list             func(ctx context.Context) ([]*domain.User, error)
	findByID         func(ctx context.Context, id int64) (*domain.User, error)
	findByEmail      func(ctx context.Context, email string) (*domain.User, error)
	findByEmployeeID func(ctx context.Context, employeeID string) (*domain.User, error)
	update           func(ctx context.Context, id int64, upd repository.UserUpdate) (*domain.User, error)
	delete           func(ctx context.Context, id int64) error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return f.create(ctx, u)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return f.list(ctx)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.findByID(ctx, id)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.findByEmail(ctx, email)
}

func (f *fakeUserRepo) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error) {
	return f.findByEmployeeID(ctx, employeeID)
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, upd repository.UserUpdate) (*domain.User, error) {
	return f.update(ctx, id, upd)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func (f *fakeUserRepo) SetRefreshTokenHash(context.Context, int64, *string) error {
	return nil
}

func userRouter(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewUserHandler(usecase.NewUserUsecase(repo), discardLogger())
	r := gin.New()
	r.POST("/users", h.Create)
	r.GET("/users", h.List)
	r.GET("/users/me", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, int64(7))
		h.GetMe(c)
	})
	r.GET("/users/:employeeId", h.GetByEmployeeID)
	r.PATCH("/users/:employeeId", h.Update)
	r.DELETE("/users/:employeeId", h.Delete)
	return r
}

func TestCreateUser_DefaultsRole(t *testing.T) {
	var created *domain.User
	r := userRouter(&fakeUserRepo{
		create: func(_ context.Context, u *domain.User) (*domain.User, error) {
			created = u
			u.ID = 1
			return u, nil
		},
	})

	rec := doJSON(r, http.MethodPost, "/users", `{"email":"new@b.com","employeeId":"E0009"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Role != domain.RoleEmployee {
		t.Errorf("created = %+v, want default employee role", created)
	}
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	r := userRouter(&fakeUserRepo{
		create: func(context.Context, *domain.User) (*domain.User, error) {
			t.Fatal("repo must not be called")
			return nil, nil
		},
	})

	rec := doJSON(r, http.MethodPost, "/users", `{"email":"new@b.com","employeeId":"E0009","role":"superuser"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateUser_SystemAdminRoleAccepted(t *testing.T) {
	r := userRouter(&fakeUserRepo{
		create: func(_ context.Context, u *domain.User) (*domain.User, error) {
			if u.Role != domain.RoleSystemAdmin {
				t.Errorf("role = %q", u.Role)
			}
			return u, nil
		},
	})

	rec := doJSON(r, http.MethodPost, "/users", `{"email":"new@b.com","employeeId":"E0009","role":"system admin"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateUser_EmailTaken(t *testing.T) {
	r := userRouter(&fakeUserRepo{
		create: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	})

	rec := doJSON(r, http.MethodPost, "/users", `{"email":"dup@b.com","employeeId":"E0009"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestListUsers(t *testing.T) {
	r := userRouter(&fakeUserRepo{
		list: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 1, EmployeeID: "E0001", Email: "a@b.com", Role: domain.RoleEmployee},
				{ID: 2, EmployeeID: "E0002", Email: "c@b.com", Role: domain.RoleManager},
			}, nil
		},
	})

	rec := doJSON(r, http.MethodGet, "/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0]["employeeId"] != "E0001" {
		t.Errorf("body = %v", out)
	}
}

func TestGetMe_UsesTokenIdentity(t *testing.T) {
	r := userRouter(&fakeUserRepo{
		findByID: func(_ context.Context, id int64) (*domain.User, error) {
			if id != 7 {
				t.Errorf("looked up id %d, want 7", id)
			}
			return &domain.User{ID: 7, EmployeeID: "E0007", Email: "me@b.com", Role: domain.RoleEmployee}, nil
		},
	})

	rec := doJSON(r, http.MethodGet, "/users/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	if body["ok"] != true || user == nil || user["employeeId"] != "E0007" {
		t.Errorf("body = %v", body)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	r := userRouter(&fakeUserRepo{
		findByEmployeeID: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	rec := doJSON(r, http.MethodGet, "/users/E0404", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateUser_ByEmployeeID(t *testing.T) {
	var updatedID int64
	var gotUpd repository.UserUpdate
	r := userRouter(&fakeUserRepo{
		findByEmployeeID: func(_ context.Context, employeeID string) (*domain.User, error) {
			if employeeID != "E0007" {
				t.Errorf("lookup employeeId = %q", employeeID)
			}
			return &domain.User{ID: 7, EmployeeID: "E0007", Email: "a@b.com", Role: domain.RoleEmployee}, nil
		},
		update: func(_ context.Context, id int64, upd repository.UserUpdate) (*domain.User, error) {
			updatedID = id
			gotUpd = upd
			return &domain.User{ID: 7, EmployeeID: "E0007", Email: "a@b.com", Role: domain.RoleManager}, nil
		},
	})

	rec := doJSON(r, http.MethodPatch, "/users/E0007", `{"role":"manager"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if updatedID != 7 || gotUpd.Role == nil || *gotUpd.Role != domain.RoleManager {
		t.Errorf("update call = (%d, %+v)", updatedID, gotUpd)
	}
}

func TestDeleteUser_OK(t *testing.T) {
	var deleted int64
	r := userRouter(&fakeUserRepo{
		findByEmployeeID: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: 7, EmployeeID: "E0007", Email: "a@b.com", Role: domain.RoleEmployee}, nil
		},
		delete: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	})

	rec := doJSON(r, http.MethodDelete, "/users/E0007", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if deleted != 7 {
		t.Errorf("deleted id = %d, want 7", deleted)
	}
}
