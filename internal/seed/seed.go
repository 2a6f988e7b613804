// Package seed loads the bootstrap admin account and meal plan catalog from
// a YAML file. Seeding is idempotent: existing rows are left untouched.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/auth"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/mealplan"
	"github.com/rsydfhmy03/SEA-Catering/internal/user"
)

type Admin struct {
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type File struct {
	Admin     *Admin                          `yaml:"admin"`
	MealPlans []mealplan.CreateMealPlanParams `yaml:"meal_plans"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	var errs []error
	if f.Admin != nil {
		if f.Admin.Email == "" || f.Admin.FullName == "" {
			errs = append(errs, errors.New("admin: full_name and email are required"))
		}
		if !api.IsStrongPassword(f.Admin.Password) {
			errs = append(errs, errors.New("admin: password is too weak"))
		}
	}

	seen := map[string]bool{}
	for i, p := range f.MealPlans {
		switch {
		case strings.TrimSpace(p.Name) == "":
			errs = append(errs, fmt.Errorf("meal_plans[%d]: name is required", i))
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("meal_plans[%d]: duplicate name %q", i, p.Name))
		}
		if !p.Price.IsPositive() {
			errs = append(errs, fmt.Errorf("meal_plans[%d]: price must be positive", i))
		}
		seen[p.Name] = true
	}
	return errors.Join(errs...)
}

type PlanStore interface {
	FindByName(ctx context.Context, name string) (*mealplan.MealPlan, error)
	Create(ctx context.Context, params mealplan.CreateMealPlanParams) (*mealplan.MealPlan, error)
}

type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, fullName, email, passwordHash, role string) (*user.User, error)
}

type Result struct {
	PlansCreated int
	PlansSkipped int
	AdminCreated bool
}

type Seeder struct {
	plans PlanStore
	users UserStore
}

func NewSeeder(plans PlanStore, users UserStore) *Seeder {
	return &Seeder{plans: plans, users: users}
}

func (s *Seeder) Run(ctx context.Context, f *File) (Result, error) {
	var res Result

	for _, p := range f.MealPlans {
		_, err := s.plans.FindByName(ctx, p.Name)
		if err == nil {
			res.PlansSkipped++
			continue
		}
		if !errors.Is(err, mealplan.ErrNotFound) {
			return res, fmt.Errorf("look up meal plan %q: %w", p.Name, err)
		}

		if _, err := s.plans.Create(ctx, p); err != nil {
			return res, fmt.Errorf("create meal plan %q: %w", p.Name, err)
		}
		res.PlansCreated++
		logger.Info("meal plan seeded", "name", p.Name, "price", p.Price.StringFixed(2))
	}

	if f.Admin == nil {
		return res, nil
	}

	email := strings.ToLower(strings.TrimSpace(f.Admin.Email))
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return res, fmt.Errorf("check admin account: %w", err)
	}
	if exists {
		return res, nil
	}

	hash, err := auth.HashPassword(f.Admin.Password)
	if err != nil {
		return res, err
	}
	if _, err := s.users.Create(ctx, f.Admin.FullName, email, hash, auth.RoleAdmin); err != nil {
		return res, fmt.Errorf("create admin account: %w", err)
	}
	res.AdminCreated = true
	logger.Info("admin account seeded", "email", email)

	return res, nil
}
