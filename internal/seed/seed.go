// Package seed loads demo accounts and listings into an empty database.
package seed

import (
	"context"
	"fmt"

	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/catalog"
	"talentnest/internal/domain/verification"
	"talentnest/internal/logger"
)

const (
	AdminEmail    = "admin@talentnest.local"
	AdminPassword = "admin12345"
	UserPassword  = "password123"
)

type Services struct {
	Auth         *auth.Service
	Catalog      *catalog.Service
	Verification *verification.Service
}

// Result summarises what was created.
type Result struct {
	Skipped  bool
	Users    int
	Listings int
}

type artisanSeed struct {
	email, name, business, whatsapp, studentID string
	listings                                   []catalog.CreateServiceRequest
}

var artisans = []artisanSeed{
	{
		email: "amaka@student.talentnest.local", name: "Amaka Eze", business: "Amaka Braids",
		whatsapp: "+2348031112233", studentID: "MCB/2022/014",
		listings: []catalog.CreateServiceRequest{
			{Title: "Knotless braids", Description: "Knotless and box braids done in the hostel", Category: "beauty", PriceRange: "N8,000 - N15,000", Tags: []string{"hair", "braids"}},
			{Title: "Braiding lessons", Description: "Two-hour sessions teaching basic cornrows", Category: "beauty", Tags: []string{"hair", "lessons"}},
		},
	},
	{
		email: "tunde@student.talentnest.local", name: "Tunde Bakare", business: "TB Codes",
		whatsapp: "+2348094445566", studentID: "CSC/2021/088",
		listings: []catalog.CreateServiceRequest{
			{Title: "Portfolio websites", Description: "Responsive personal sites for final year students", Category: "tech", DeliveryTime: "5 days", Tags: []string{"web", "design"}},
		},
	},
}

var students = []auth.RegisterRequest{
	{Email: "chidi@student.talentnest.local", DisplayName: "Chidi Okafor", Department: "Law", StudentID: "LAW/2023/002"},
	{Email: "fola@student.talentnest.local", DisplayName: "Fola Adeyemi", Department: "Pharmacy", StudentID: "PHA/2022/031"},
}

// Run creates an admin, students and verified artisans with active
// listings. It does nothing when the admin account already exists.
func Run(ctx context.Context, users auth.UserRepositoryInterface, svc Services) (*Result, error) {
	exists, err := users.ExistsByEmail(ctx, AdminEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Info("seed data already present, skipping")
		return &Result{Skipped: true}, nil
	}

	res := &Result{}
	admin, err := svc.Auth.CreateAdmin(ctx, AdminEmail, AdminPassword, "Platform Admin")
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	res.Users++
	logger.Info("admin created", "email", AdminEmail)

	for _, s := range students {
		s.Password = UserPassword
		s.Role = "student"
		if _, err := svc.Auth.Register(ctx, s); err != nil {
			return nil, fmt.Errorf("register %s: %w", s.Email, err)
		}
		res.Users++
	}

	for _, a := range artisans {
		reg, err := svc.Auth.Register(ctx, auth.RegisterRequest{
			Email:          a.email,
			Password:       UserPassword,
			Role:           "artisan",
			DisplayName:    a.name,
			WhatsAppNumber: a.whatsapp,
			BusinessName:   a.business,
			StudentID:      a.studentID,
		})
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", a.email, err)
		}
		res.Users++
		artisan := reg.User.Actor()

		req, err := svc.Verification.Submit(ctx, artisan, verification.SubmitRequest{
			FullName:     a.name,
			StudentID:    a.studentID,
			BusinessName: a.business,
		})
		if err != nil {
			return nil, fmt.Errorf("submit verification for %s: %w", a.email, err)
		}
		if _, err := svc.Verification.ApproveWithOverride(ctx, admin.Actor(), req.ID, "seed data"); err != nil {
			return nil, fmt.Errorf("approve %s: %w", a.email, err)
		}

		for _, l := range a.listings {
			created, err := svc.Catalog.CreateService(ctx, artisan, l)
			if err != nil {
				return nil, fmt.Errorf("create listing %q: %w", l.Title, err)
			}
			if _, err := svc.Catalog.SetServiceStatus(ctx, admin.Actor(), created.ID, string(catalog.StatusActive)); err != nil {
				return nil, fmt.Errorf("activate listing %q: %w", l.Title, err)
			}
			res.Listings++
		}
	}

	logger.Info("seed completed", "users", res.Users, "listings", res.Listings)
	return res, nil
}
