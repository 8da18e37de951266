package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"staffhub/internal/core"
	"staffhub/internal/database/mongodb/model"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type employeeFixture struct {
	svc         *EmployeeService
	directory   *fakeDirectory
	employees   *fakeEmployeeStore
	memberships *fakeMembershipStore
	shops       *fakeShopStore
	batchLogs   *fakeBatchLogStore
	uid         string
}

// newEmployeeFixture 預先建立一名屬於 testOwner 的員工
func newEmployeeFixture(t *testing.T) *employeeFixture {
	t.Helper()
	trace, _, _ := telemetry.NewTrace(nil)

	f := &employeeFixture{
		directory:   newFakeDirectory(),
		employees:   newFakeEmployeeStore(),
		memberships: newFakeMembershipStore(),
		shops:       newFakeShopStore(testOwner, "owner-2"),
		batchLogs:   &fakeBatchLogStore{},
	}
	f.svc = NewEmployeeService(zap.NewNop(), trace, f.directory, f.employees, f.memberships, f.shops, f.batchLogs)
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	f.svc.newCredential = func(int) (string, error) { return "NewPass1", nil }

	ctx := context.Background()
	uid, err := f.directory.CreateUser(ctx, CreateIdentityParams{Email: "employee1@co.com", Password: "OldPass1", Origin: core.IdentityOriginBatch})
	if err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	f.uid = uid
	_, _ = f.employees.Create(ctx, &model.Employee{
		ID: uid, ShopID: testShop, ShopOwnerID: testOwner, Email: "employee1@co.com",
		TemporaryPassword: "OldPass1", EmployeeID: "EMPABCD001", EmployeeNumber: 1,
		Status: string(core.EmployeeStatusActive),
	})
	_ = f.memberships.Put(ctx, &model.ShopEmployee{ShopID: testShop, EmployeeID: uid, Email: "employee1@co.com", Status: "active"})
	return f
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       string
		wantDisabled bool
	}{
		{name: "suspend disables identity", status: "suspended", wantDisabled: true},
		{name: "inactive disables identity", status: "inactive", wantDisabled: true},
		{name: "active enables identity", status: "active", wantDisabled: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newEmployeeFixture(t)

			if err := f.svc.UpdateStatus(context.Background(), f.uid, tt.status, testOwner); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			record, _ := f.employees.get(f.uid)
			if record.Status != tt.status || record.StatusUpdatedBy != testOwner || record.LastUpdated.IsZero() {
				t.Fatalf("record not updated: %+v", record)
			}
			membership, _ := f.memberships.get(testShop, f.uid)
			if membership.Status != tt.status {
				t.Fatalf("membership status not synced: %s", membership.Status)
			}
			if f.directory.byUID[f.uid].Disabled != tt.wantDisabled {
				t.Fatalf("expected disabled=%v", tt.wantDisabled)
			}
		})
	}
}

func TestUpdateStatusRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uid        func(f *employeeFixture) string
		status     string
		owner      string
		wantStatus int
	}{
		{name: "invalid status", uid: func(f *employeeFixture) string { return f.uid }, status: "fired", owner: testOwner, wantStatus: http.StatusBadRequest},
		{name: "empty status", uid: func(f *employeeFixture) string { return f.uid }, status: "", owner: testOwner, wantStatus: http.StatusBadRequest},
		{name: "invalid status before unknown employee", uid: func(*employeeFixture) string { return "missing" }, status: "fired", owner: testOwner, wantStatus: http.StatusBadRequest},
		{name: "missing owner", uid: func(f *employeeFixture) string { return f.uid }, status: "active", owner: "", wantStatus: http.StatusBadRequest},
		{name: "unknown employee", uid: func(*employeeFixture) string { return "missing" }, status: "active", owner: testOwner, wantStatus: http.StatusNotFound},
		{name: "other owner", uid: func(f *employeeFixture) string { return f.uid }, status: "inactive", owner: "owner-2", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newEmployeeFixture(t)

			err := f.svc.UpdateStatus(context.Background(), tt.uid(f), tt.status, tt.owner)
			requireAppError(t, err, tt.wantStatus)

			record, _ := f.employees.get(f.uid)
			if record.Status != "active" || record.StatusUpdatedBy != "" {
				t.Fatalf("rejected update must not mutate the record: %+v", record)
			}
			if f.directory.byUID[f.uid].Disabled {
				t.Fatalf("rejected update must not touch the identity")
			}
		})
	}
}

func TestUpdateStatusDirectoryFailureKeepsRecord(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)
	f.directory.updateErr = errors.New("directory unavailable")

	err := f.svc.UpdateStatus(context.Background(), f.uid, "suspended", testOwner)
	appErr := requireAppError(t, err, http.StatusInternalServerError)
	if appErr.ErrorCode() != cErr.DIRECTORY_ERROR {
		t.Fatalf("expected directory error code, got %d", appErr.ErrorCode())
	}
	record, _ := f.employees.get(f.uid)
	if record.Status != "active" || record.StatusUpdatedBy != "" {
		t.Fatalf("record must stay active when the identity was not updated: %+v", record)
	}
	membership, _ := f.memberships.get(testShop, f.uid)
	if membership.Status != "active" {
		t.Fatalf("membership must stay active, got %s", membership.Status)
	}
}

func TestUpdateStatusRecordFailureRestoresIdentity(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)
	f.employees.updateErr = errors.New("write conflict")

	err := f.svc.UpdateStatus(context.Background(), f.uid, "suspended", testOwner)
	appErr := requireAppError(t, err, http.StatusInternalServerError)
	if appErr.ErrorCode() != cErr.DATABASE_ERROR {
		t.Fatalf("expected database error code, got %d", appErr.ErrorCode())
	}
	if f.directory.byUID[f.uid].Disabled {
		t.Fatalf("identity must be re-enabled when the record write fails")
	}
	membership, _ := f.memberships.get(testShop, f.uid)
	if membership.Status != "active" {
		t.Fatalf("membership must stay active, got %s", membership.Status)
	}
}

func TestResetPassword(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)

	password, err := f.svc.ResetPassword(context.Background(), f.uid, testOwner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if password != "NewPass1" {
		t.Fatalf("expected new credential, got %q", password)
	}
	record, _ := f.employees.get(f.uid)
	if record.TemporaryPassword != "NewPass1" || record.PasswordResetBy != testOwner || record.PasswordResetAt == nil {
		t.Fatalf("record not updated: %+v", record)
	}
	if f.directory.byUID[f.uid].PasswordHash != "NewPass1" {
		t.Fatalf("identity credential not rotated")
	}

	_, err = f.svc.ResetPassword(context.Background(), f.uid, "owner-2")
	requireAppError(t, err, http.StatusForbidden)
}

func TestResetPasswordDirectoryFailure(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)
	f.directory.updateErr = errors.New("directory unavailable")

	_, err := f.svc.ResetPassword(context.Background(), f.uid, testOwner)
	appErr := requireAppError(t, err, http.StatusInternalServerError)
	if appErr.ErrorCode() != cErr.DIRECTORY_ERROR {
		t.Fatalf("expected directory error code, got %d", appErr.ErrorCode())
	}
	record, _ := f.employees.get(f.uid)
	if record.TemporaryPassword != "OldPass1" {
		t.Fatalf("record must keep the old credential when the directory rejects the change")
	}
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)
	ctx := context.Background()

	requireAppError(t, f.svc.DeleteEmployee(ctx, f.uid, "owner-2"), http.StatusForbidden)

	if err := f.svc.DeleteEmployee(ctx, f.uid, testOwner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.employees.get(f.uid); ok {
		t.Fatalf("employee record must be removed")
	}
	if _, ok := f.memberships.get(testShop, f.uid); ok {
		t.Fatalf("membership entry must be removed")
	}
	if f.directory.has(f.uid) {
		t.Fatalf("identity must be removed")
	}

	requireAppError(t, f.svc.DeleteEmployee(ctx, f.uid, testOwner), http.StatusNotFound)
	requireAppError(t, f.svc.UpdateStatus(ctx, f.uid, "active", testOwner), http.StatusNotFound)
	_, err := f.svc.ResetPassword(ctx, f.uid, testOwner)
	requireAppError(t, err, http.StatusNotFound)
}

func TestDeleteEmployeeToleratesMissingIdentity(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)
	_ = f.directory.DeleteUser(context.Background(), f.uid)

	if err := f.svc.DeleteEmployee(context.Background(), f.uid, testOwner); err != nil {
		t.Fatalf("missing identity should not block record removal: %v", err)
	}
	if _, ok := f.employees.get(f.uid); ok {
		t.Fatalf("employee record must be removed")
	}
}

func TestListEmployees(t *testing.T) {
	t.Parallel()
	f := newEmployeeFixture(t)
	ctx := context.Background()

	list, err := f.svc.ListEmployees(ctx, testShop, testOwner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != f.uid || list[0].EmployeeID != "EMPABCD001" {
		t.Fatalf("unexpected list: %+v", list)
	}

	empty, err := f.svc.ListEmployees(ctx, "other-shop", testOwner)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v, %v", empty, err)
	}

	_, err = f.svc.ListEmployees(ctx, testShop, "")
	requireAppError(t, err, http.StatusBadRequest)
	_, err = f.svc.ListEmployees(ctx, testShop, "stranger")
	appErr := requireAppError(t, err, http.StatusForbidden)
	if appErr.ErrorDesc() != "Unauthorized access to shop employees" {
		t.Fatalf("unexpected message %q", appErr.ErrorDesc())
	}
}

func TestListBatchLogsLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int64
		want  int64
	}{
		{name: "default", limit: 0, want: 20},
		{name: "custom", limit: 5, want: 5},
		{name: "capped", limit: 500, want: 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newEmployeeFixture(t)
			_ = f.batchLogs.Append(context.Background(), &model.BatchLog{ID: primitive.NewObjectID(), ShopID: testShop, CountCreated: 2})

			logs, err := f.svc.ListBatchLogs(context.Background(), testShop, testOwner, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(logs) != 1 || logs[0].CountCreated != 2 {
				t.Fatalf("unexpected logs: %+v", logs)
			}
			if f.batchLogs.lastLimit != tt.want {
				t.Fatalf("expected limit %d, got %d", tt.want, f.batchLogs.lastLimit)
			}
		})
	}
}
