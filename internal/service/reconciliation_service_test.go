package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payment-recon/internal/domain"
	"payment-recon/internal/engine"
	"payment-recon/internal/repository"
	"payment-recon/internal/repository/mocks"
	"payment-recon/internal/service"
)

func switchCSV(lines ...string) string {
	header := strings.Join(domain.DefaultSwitchColumns().Required(), ",")
	return header + "\n" + strings.Join(lines, "\n") + "\n"
}

func gatewayCSV(lines ...string) string {
	header := strings.Join(domain.DefaultGatewayColumns().Required(), ",")
	return header + "\n" + strings.Join(lines, "\n") + "\n"
}

func upload(name, content string) service.Upload {
	return service.Upload{Name: name, Reader: strings.NewReader(content)}
}

func newEngine() *engine.ReconciliationEngine {
	return engine.NewReconciliationEngine(engine.DefaultOptions())
}

func TestReconciliationService_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReconciliationRepository(ctrl)
	svc := service.NewReconciliationService(repo, newEngine())

	var jobID string
	gomock.InOrder(
		repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, job *domain.ReconciliationJob) error {
				assert.Equal(t, domain.Processing, job.Status)
				assert.Equal(t, []string{"azm-1.csv", "azm-2.csv"}, job.SwitchFiles)
				assert.Equal(t, []string{"hyperpay.csv"}, job.GatewayFiles)
				jobID = job.JobID
				return nil
			}),
		repo.EXPECT().SaveResult(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, result *domain.ReconciliationResult) error {
				assert.Equal(t, jobID, id)
				assert.Equal(t, 3, result.Stats.TotalSwitchTransactions)
				return nil
			}),
		repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, job *domain.ReconciliationJob) error {
				assert.Equal(t, domain.Completed, job.Status)
				require.NotNil(t, job.Stats)
				return nil
			}),
	)

	result, err := svc.Reconcile(context.Background(),
		[]service.Upload{
			upload("azm-1.csv", switchCSV(
				`2024-03-01 10:00,success,R1,mada,"1,000"`,
				`2024-03-01 10:05,pending,R4,visa,20`,
			)),
			upload("azm-2.csv", switchCSV(
				`2024-03-02 09:00,rejected,R2,mada,50`,
			)),
		},
		[]service.Upload{
			upload("hyperpay.csv", gatewayCSV(
				`R1,1000,2024-03-01T10:00:01Z,ACK`,
				`R3,75,2024-03-01T11:00:00Z,ACK`,
				`R4,20,2024-03-01T10:05:01Z,ACK`,
			)),
		},
	)
	require.NoError(t, err)

	_, err = uuid.Parse(result.Job.JobID)
	assert.NoError(t, err)
	assert.Equal(t, jobID, result.Job.JobID)

	require.Len(t, result.Result.MissingFromSwitch, 1)
	assert.Equal(t, "R3", result.Result.MissingFromSwitch[0].TransactionID)
	require.Len(t, result.Result.StatusMismatch, 1)
	assert.Equal(t, "R4", result.Result.StatusMismatch[0].Switch.Reference)
	assert.Empty(t, result.Result.MissingFromGateway)
}

func TestReconciliationService_Reconcile_Failures(t *testing.T) {
	tests := []struct {
		name         string
		switchFiles  []service.Upload
		gatewayFiles []service.Upload
		saveErr      error
		wantErr      error
	}{
		{
			name:        "unsupported file",
			switchFiles: []service.Upload{upload("azm.pdf", "")},
			wantErr:     domain.ErrUnsupportedFormat,
		},
		{
			name:         "ragged gateway file",
			gatewayFiles: []service.Upload{upload("hp.csv", gatewayCSV("R1,10"))},
			wantErr:      domain.ErrMalformedInput,
		},
		{
			name:         "missing column",
			gatewayFiles: []service.Upload{upload("hp.csv", "TransactionId,Credit\nR1,10\n")},
			wantErr:      domain.ErrMalformedInput,
		},
		{
			name:         "header-only switch file with unknown columns",
			switchFiles:  []service.Upload{upload("azm.csv", "foo,bar\n")},
			gatewayFiles: []service.Upload{upload("hp.csv", gatewayCSV("R1,10,2024-03-01,ACK"))},
			wantErr:      domain.ErrMalformedInput,
		},
		{
			name: "second gateway file has only a partial header",
			gatewayFiles: []service.Upload{
				upload("hp-1.csv", gatewayCSV("R1,10,2024-03-01,ACK")),
				upload("hp-2.csv", "TransactionId,Credit\n"),
			},
			wantErr: domain.ErrMalformedInput,
		},
		{
			name:         "store failure",
			gatewayFiles: []service.Upload{upload("hp.csv", gatewayCSV("R1,10,2024-03-01,ACK"))},
			saveErr:      errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockReconciliationRepository(ctrl)
			svc := service.NewReconciliationService(repo, newEngine())

			repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(nil)
			if tt.saveErr != nil {
				repo.EXPECT().SaveResult(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.saveErr)
			}
			repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, job *domain.ReconciliationJob) error {
					assert.Equal(t, domain.Failed, job.Status)
					require.NotNil(t, job.ErrorMessage)
					assert.NotEmpty(t, *job.ErrorMessage)
					return nil
				})

			result, err := svc.Reconcile(context.Background(), tt.switchFiles, tt.gatewayFiles)
			assert.Nil(t, result)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.saveErr != nil {
				assert.ErrorIs(t, err, tt.saveErr)
			}
		})
	}
}

func TestReconciliationService_Reconcile_HeaderOnlyFileNamesFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReconciliationRepository(ctrl)
	svc := service.NewReconciliationService(repo, newEngine())

	gomock.InOrder(
		repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, job *domain.ReconciliationJob) error {
				assert.Equal(t, domain.Failed, job.Status)
				require.NotNil(t, job.ErrorMessage)
				assert.Contains(t, *job.ErrorMessage, "azm.csv")
				return nil
			}),
	)

	result, err := svc.Reconcile(context.Background(),
		[]service.Upload{upload("azm.csv", "foo,bar\n")},
		[]service.Upload{upload("hyperpay.csv", gatewayCSV(`R1,10,2024-03-01T10:00:00Z,ACK`))},
	)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Contains(t, err.Error(), "missing required column")
	assert.Contains(t, err.Error(), domain.DefaultSwitchColumns().OccurredAt)
}

func TestReconciliationService_CreateJobFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockReconciliationRepository(ctrl)
	svc := service.NewReconciliationService(repo, newEngine())

	repo.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := svc.ReconcileRows(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestReconciliationService_GetJob_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no repository call is expected for ids that cannot exist
	repo := mocks.NewMockReconciliationRepository(ctrl)
	svc := service.NewReconciliationService(repo, newEngine())

	_, err := svc.GetJob(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = svc.GetResult(context.Background(), "../etc")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestReconciliationService_Export(t *testing.T) {
	ctx := context.Background()
	svc := service.NewReconciliationService(repository.NewMemoryRepository(), newEngine())

	gw := domain.DefaultGatewayColumns()
	jobResult, err := svc.ReconcileRows(ctx, nil, []domain.RawRow{
		{gw.TransactionID: "R3", gw.Credit: "75", gw.RequestedAt: "2024-03-01T11:00:00Z", gw.Result: "ACK"},
	})
	require.NoError(t, err)
	jobID := jobResult.Job.JobID

	job, err := svc.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.Completed, job.Status)
	assert.Equal(t, 1, job.Stats.MissingFromSwitchCount)

	csvFile, err := svc.Export(ctx, jobID, service.ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "reconciliation_"+jobID+".csv", csvFile.Filename)
	assert.Equal(t, "text/csv", csvFile.ContentType)
	assert.True(t, strings.HasPrefix(string(csvFile.Data), "Transaction ID,Credit,Request Timestamp,Result\nR3,75,"))

	xlsxFile, err := svc.Export(ctx, jobID, service.ExportXLSX)
	require.NoError(t, err)
	assert.Equal(t, "reconciliation_"+jobID+".xlsx", xlsxFile.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(xlsxFile.Data))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 4)

	_, err = svc.Export(ctx, uuid.New().String(), service.ExportCSV)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestParseExportFormat(t *testing.T) {
	f, err := service.ParseExportFormat(" XLSX ")
	assert.NoError(t, err)
	assert.Equal(t, service.ExportXLSX, f)

	f, err = service.ParseExportFormat("csv")
	assert.NoError(t, err)
	assert.Equal(t, service.ExportCSV, f)

	_, err = service.ParseExportFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
