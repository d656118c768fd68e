package services

import (
	"context"
	"net/http"
	"testing"

	"events-cms-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCategoryCreate(t *testing.T) {
	store := newFakeCategoryStore(&models.EventCategory{Slug: "concerts", IsActive: true})
	svc := NewCategoryService(store)
	ctx := context.Background()

	category, err := svc.Create(ctx, models.CategoryRequest{Name: "Soirées", Slug: "Soirees", Color: "#FF0000"}, "admin@example.com")
	if err != nil {
		t.Fatalf("Create() erreur = %v", err)
	}
	if category.Slug != "soirees" || !category.IsActive || category.CreatedBy != "admin@example.com" {
		t.Errorf("category = %+v", category)
	}

	_, err = svc.Create(ctx, models.CategoryRequest{Name: "Concerts", Slug: "concerts"}, "admin@example.com")
	if statusOf(err) != http.StatusConflict {
		t.Errorf("slug existant = %v, attendu 409", err)
	}
}

func TestCategoryCreate_SlugDUneCategorieSupprimee(t *testing.T) {
	store := newFakeCategoryStore(&models.EventCategory{Slug: "concerts", IsDeleted: true})
	svc := NewCategoryService(store)

	_, err := svc.Create(context.Background(), models.CategoryRequest{Name: "Concerts", Slug: "concerts"}, "admin@example.com")
	if statusOf(err) != http.StatusConflict {
		t.Errorf("erreur = %v, attendu 409 (le slug reste réservé)", err)
	}
}

func TestCategoryUpdate(t *testing.T) {
	a := &models.EventCategory{Name: "A", Slug: "a", IsActive: true}
	b := &models.EventCategory{Name: "B", Slug: "b", IsActive: true}
	svc := NewCategoryService(newFakeCategoryStore(a, b))
	ctx := context.Background()

	updated, err := svc.Update(ctx, a.ID, models.CategoryRequest{Name: "A2", Slug: "a"})
	if err != nil || updated.Name != "A2" {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}

	tests := []struct {
		name   string
		id     primitive.ObjectID
		req    models.CategoryRequest
		status int
	}{
		{"slug pris", a.ID, models.CategoryRequest{Name: "A", Slug: "b"}, http.StatusConflict},
		{"catégorie inconnue", primitive.NewObjectID(), models.CategoryRequest{Name: "X", Slug: "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, tt.id, tt.req); statusOf(err) != tt.status {
				t.Errorf("erreur = %v, attendu %d", err, tt.status)
			}
		})
	}
}

func TestCategorySoftDeleteEtStatut(t *testing.T) {
	c := &models.EventCategory{Name: "A", Slug: "a", IsActive: true}
	svc := NewCategoryService(newFakeCategoryStore(c))
	ctx := context.Background()

	toggled, err := svc.SetActive(ctx, c.ID, false)
	if err != nil || toggled.IsActive {
		t.Fatalf("SetActive() = %+v, %v", toggled, err)
	}
	if _, err := svc.GetActiveBySlug(ctx, "a"); statusOf(err) != http.StatusNotFound {
		t.Errorf("catégorie inactive visible publiquement: %v", err)
	}

	if err := svc.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("SoftDelete() erreur = %v", err)
	}
	if _, err := svc.Get(ctx, c.ID); statusOf(err) != http.StatusNotFound {
		t.Errorf("Get() après suppression = %v, attendu 404", err)
	}
}

func TestCategoryListActive(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore(
		&models.EventCategory{Name: "Concerts", Slug: "concerts", IsActive: true},
		&models.EventCategory{Name: "Gala", Slug: "gala", IsActive: false},
	))
	ctx := context.Background()

	categories, pagination, err := svc.ListActive(ctx, "", 1, 20)
	if err != nil || len(categories) != 1 || pagination.TotalItems != 1 || pagination.TotalPages != 1 {
		t.Errorf("ListActive() = %d, %+v, %v", len(categories), pagination, err)
	}

	all, err := svc.ListAllActive(ctx)
	if err != nil || len(all) != 1 || all[0].Slug != "concerts" {
		t.Errorf("ListAllActive() = %+v, %v", all, err)
	}

	found, err := svc.GetActiveBySlug(ctx, "CONCERTS")
	if err != nil || found.Name != "Concerts" {
		t.Errorf("GetActiveBySlug() = %+v, %v", found, err)
	}
}
