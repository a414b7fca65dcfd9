package service

import (
	"context"
	"testing"
	"time"

	"checklist-service/internal/apperror"
	"checklist-service/internal/dto"
	"checklist-service/internal/testutil"
	"checklist-service/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setupServices(t *testing.T) (*Services, *testutil.MemoryStore) {
	t.Helper()
	store := testutil.NewMemoryStore()
	store.Now = testutil.StepClock(epoch, time.Minute)
	return NewServices(store.Projects(), store.ServiceProviders(), store.Checklists(), validator.New()), store
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{-3, 10, 1, 10},
		{2, 100, 2, 100},
		{4, 101, 4, 20},
	}
	for _, tt := range tests {
		page, limit := NormalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}
}

func TestProjectService_CreateStampsAudit(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, dto.CreateProjectRequest{Name: "Harbour Bridge", Region: "APAC"}, "alice@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, epoch, project.CreatedAt)
	assert.Equal(t, "alice@example.com", project.CreatedBy)
	assert.Nil(t, project.LastUpdatedAt)
	assert.Nil(t, project.LastUpdatedBy)
	assert.NotNil(t, project.Checklists)
}

func TestProjectService_CreateWithoutActorRecordsSystem(t *testing.T) {
	svcs, _ := setupServices(t)

	project, err := svcs.Project.Create(context.Background(), testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, "system", project.CreatedBy)
}

func TestProjectService_CreateRejectsInvalidInput(t *testing.T) {
	svcs, _ := setupServices(t)

	_, err := svcs.Project.Create(context.Background(), dto.CreateProjectRequest{Name: "   ", Region: ""}, "")
	require.Error(t, err)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "region")
}

func TestProjectService_UpdateKeepsCreationStamp(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	created, err := svcs.Project.Create(ctx, dto.CreateProjectRequest{Name: "Old", Region: "EMEA"}, "alice@example.com")
	require.NoError(t, err)

	updated, err := svcs.Project.Update(ctx, created.ID, dto.UpdateProjectRequest{Name: strPtr("New")}, "bob@example.com")
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "EMEA", updated.Region)
	assert.Equal(t, epoch, updated.CreatedAt)
	assert.Equal(t, "alice@example.com", updated.CreatedBy)
	require.NotNil(t, updated.LastUpdatedAt)
	assert.True(t, updated.LastUpdatedAt.After(updated.CreatedAt))
	require.NotNil(t, updated.LastUpdatedBy)
	assert.Equal(t, "bob@example.com", *updated.LastUpdatedBy)

	reloaded, err := svcs.Project.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", reloaded.Name)
	assert.Equal(t, "alice@example.com", reloaded.CreatedBy)
}

func TestProjectService_UpdateRequiresAField(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	created, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)

	_, err = svcs.Project.Update(ctx, created.ID, dto.UpdateProjectRequest{}, "")
	assert.True(t, apperror.IsValidation(err))

	_, err = svcs.Project.Update(ctx, created.ID, dto.UpdateProjectRequest{Region: strPtr("")}, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestProjectService_UpdateMissing(t *testing.T) {
	svcs, _ := setupServices(t)

	_, err := svcs.Project.Update(context.Background(), "missing", dto.UpdateProjectRequest{Name: strPtr("x")}, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProjectService_ListNewestFirst(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		p, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	page, total, err := svcs.Project.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)

	page, _, err = svcs.Project.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)
}

func TestProjectService_DeleteCascadesChecklists(t *testing.T) {
	svcs, store := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	checklist, err := svcs.Checklist.Create(ctx, project.ID, testutil.NewChecklistRequest("SUP001"), "")
	require.NoError(t, err)

	require.NoError(t, svcs.Project.Delete(ctx, project.ID))

	_, err = svcs.Project.Get(ctx, project.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svcs.Checklist.Get(ctx, checklist.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, 0, store.ChecklistCount())

	assert.ErrorIs(t, svcs.Project.Delete(ctx, project.ID), apperror.ErrNotFound)
}

func TestChecklistService_CreateAutoRegistersProvider(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)

	checklist, err := svcs.Checklist.Create(ctx, project.ID, dto.CreateChecklistRequest{
		SupplierCode: "SUP001",
		DocumentName: "Contract Data",
		IsChecked:    true,
	}, "carol@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, checklist.ID)
	assert.Equal(t, project.ID, checklist.ProjectID)
	assert.Equal(t, "carol@example.com", checklist.CreatedBy)
	require.NotNil(t, checklist.ServiceProvider)
	assert.Equal(t, "SUP001", checklist.ServiceProvider.SupplierName)

	provider, err := svcs.ServiceProvider.Get(ctx, "SUP001")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", provider.CreatedBy)
}

func TestChecklistService_CreateKeepsExistingProviderName(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	_, err := svcs.ServiceProvider.Register(ctx, dto.CreateServiceProviderRequest{SupplierCode: "SUP002", SupplierName: "Acme Ltd"}, "")
	require.NoError(t, err)
	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)

	req := testutil.NewChecklistRequest("SUP002")
	req.SupplierName = "Someone Else"
	checklist, err := svcs.Checklist.Create(ctx, project.ID, req, "")
	require.NoError(t, err)

	require.NotNil(t, checklist.ServiceProvider)
	assert.Equal(t, "Acme Ltd", checklist.ServiceProvider.SupplierName)
}

func TestChecklistService_DuplicateTripleConflicts(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)

	req := dto.CreateChecklistRequest{SupplierCode: "SUP001", DocumentName: "Contract Data", IsChecked: true}
	_, err = svcs.Checklist.Create(ctx, project.ID, req, "")
	require.NoError(t, err)

	req.IsChecked = false
	_, err = svcs.Checklist.Create(ctx, project.ID, req, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// same document under another supplier is a different triple
	req.SupplierCode = "SUP002"
	_, err = svcs.Checklist.Create(ctx, project.ID, req, "")
	assert.NoError(t, err)
}

func TestChecklistService_CreateForMissingProject(t *testing.T) {
	svcs, _ := setupServices(t)

	_, err := svcs.Checklist.Create(context.Background(), "missing", testutil.NewChecklistRequest("SUP001"), "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestChecklistService_UpdateStampsAndDetectsCollision(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	first, err := svcs.Checklist.Create(ctx, project.ID, dto.CreateChecklistRequest{SupplierCode: "SUP001", DocumentName: "Contract Data", IsChecked: true}, "alice@example.com")
	require.NoError(t, err)
	second, err := svcs.Checklist.Create(ctx, project.ID, dto.CreateChecklistRequest{SupplierCode: "SUP001", DocumentName: "Invoice"}, "")
	require.NoError(t, err)

	updated, err := svcs.Checklist.Update(ctx, first.ID, dto.UpdateChecklistRequest{IsChecked: boolPtr(false)}, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, updated.IsChecked)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "alice@example.com", updated.CreatedBy)
	require.NotNil(t, updated.LastUpdatedBy)
	assert.Equal(t, "bob@example.com", *updated.LastUpdatedBy)

	_, err = svcs.Checklist.Update(ctx, second.ID, dto.UpdateChecklistRequest{DocumentName: strPtr("Contract Data")}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svcs.Checklist.Update(ctx, second.ID, dto.UpdateChecklistRequest{}, "")
	assert.True(t, apperror.IsValidation(err))

	_, err = svcs.Checklist.Update(ctx, "missing", dto.UpdateChecklistRequest{IsChecked: boolPtr(true)}, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestChecklistService_ListByProjectReturnsOnlyOwnChecklists(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	a, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	b, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svcs.Checklist.Create(ctx, a.ID, testutil.NewChecklistRequest("SUP001"), "")
		require.NoError(t, err)
	}
	_, err = svcs.Checklist.Create(ctx, b.ID, testutil.NewChecklistRequest("SUP001"), "")
	require.NoError(t, err)

	list, err := svcs.Checklist.ListByProject(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		assert.Equal(t, a.ID, c.ProjectID)
	}

	_, err = svcs.Checklist.ListByProject(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestChecklistService_Delete(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	checklist, err := svcs.Checklist.Create(ctx, project.ID, testutil.NewChecklistRequest("SUP001"), "")
	require.NoError(t, err)

	require.NoError(t, svcs.Checklist.Delete(ctx, checklist.ID))
	_, err = svcs.Checklist.Get(ctx, checklist.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, svcs.Checklist.Delete(ctx, checklist.ID), apperror.ErrNotFound)
}

func TestChecklistService_Export(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	_, err = svcs.Checklist.Create(ctx, project.ID, dto.CreateChecklistRequest{
		SupplierCode: "SUP001",
		SupplierName: "Acme Ltd",
		DocumentName: "Contract Data",
		IsChecked:    true,
	}, "alice@example.com")
	require.NoError(t, err)

	buf, name, err := svcs.Checklist.Export(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "checklists-"+project.ID+".xlsx", name)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Supplier Code", rows[0][0])
	assert.Equal(t, []string{"SUP001", "Acme Ltd", "Contract Data", "TRUE"}, rows[1][:4])
	assert.Equal(t, "alice@example.com", rows[1][5])

	_, _, err = svcs.Checklist.Export(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestServiceProviderService_Lifecycle(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	code := testutil.RandomSupplierCode()
	provider, err := svcs.ServiceProvider.Register(ctx, dto.CreateServiceProviderRequest{SupplierCode: code, SupplierName: "Acme Ltd"}, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", provider.CreatedBy)

	_, err = svcs.ServiceProvider.Register(ctx, dto.CreateServiceProviderRequest{SupplierCode: code, SupplierName: "Other"}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	updated, err := svcs.ServiceProvider.Update(ctx, code, dto.UpdateServiceProviderRequest{SupplierName: strPtr("Acme Group")}, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme Group", updated.SupplierName)
	assert.Equal(t, "alice@example.com", updated.CreatedBy)
	require.NotNil(t, updated.LastUpdatedBy)
	assert.Equal(t, "bob@example.com", *updated.LastUpdatedBy)

	_, err = svcs.ServiceProvider.Update(ctx, code, dto.UpdateServiceProviderRequest{}, "")
	assert.True(t, apperror.IsValidation(err))

	providers, total, err := svcs.ServiceProvider.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, providers, 1)

	require.NoError(t, svcs.ServiceProvider.Delete(ctx, code))
	_, err = svcs.ServiceProvider.Get(ctx, code)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestServiceProviderService_DeleteReferencedConflicts(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	project, err := svcs.Project.Create(ctx, testutil.NewProjectRequest(), "")
	require.NoError(t, err)
	_, err = svcs.Checklist.Create(ctx, project.ID, testutil.NewChecklistRequest("SUP009"), "")
	require.NoError(t, err)

	assert.ErrorIs(t, svcs.ServiceProvider.Delete(ctx, "SUP009"), apperror.ErrConflict)

	// once the project is gone the provider is free
	require.NoError(t, svcs.Project.Delete(ctx, project.ID))
	assert.NoError(t, svcs.ServiceProvider.Delete(ctx, "SUP009"))
}
