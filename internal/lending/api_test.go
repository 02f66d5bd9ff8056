package lending_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/library-circulation/go-api-server/internal/lending"
	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
	"github.com/library-circulation/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLendingRouter(env *lendingEnv, memberID uint32) *gin.Engine {
	h := lending.NewLendingHandler(env.service)

	router := testutil.SetupTestRouter()
	api := router.Group("/api/v1")
	if memberID != 0 {
		api.Use(testutil.AuthenticatedAs(memberID))
	}
	api.POST("/loans", h.Borrow)
	api.GET("/loans", h.ListBorrowed)
	api.POST("/loans/return", h.Return)
	api.PUT("/subscriptions", h.SetSubscription)
	return router
}

func TestBorrowAPI_Accepted(t *testing.T) {
	// Given
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID, testutil.WithCopies(env.branch.ID, 1))
	router := setupLendingRouter(env, m.ID)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/loans",
		Body:   lending.BorrowRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)

	var response lending.OutcomeResponse[lending.BorrowDetails]
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, lending.StatusAccepted, response.Status)
	require.NotNil(t, response.Details)
	assert.Equal(t, book.ID, response.Details.BookID)
	assert.Equal(t, uint32(1), response.Details.Seq)
}

func TestBorrowAPI_RejectionIsNotAnError(t *testing.T) {
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID, testutil.WithCopies(env.branch.ID, 0))
	router := setupLendingRouter(env, m.ID)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/loans",
		Body:   lending.BorrowRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var response lending.OutcomeResponse[lending.BorrowDetails]
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, lending.StatusRejected, response.Status)
	assert.Equal(t, lending.ReasonNoCopiesAvailable, response.Reason)
	assert.Nil(t, response.Details)
}

func TestBorrowAPI_Errors(t *testing.T) {
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID, testutil.WithCopies(env.branch.ID, 1))

	tests := []struct {
		name       string
		memberID   uint32
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed isbn",
			memberID:   m.ID,
			body:       lending.BorrowRequest{ISBN: "978-3-16-148410-0", BranchID: env.branch.ID},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ERROR-001",
		},
		{
			name:       "missing branch",
			memberID:   m.ID,
			body:       map[string]string{"isbn": book.ISBN},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ERROR-001",
		},
		{
			name:       "unknown book",
			memberID:   m.ID,
			body:       lending.BorrowRequest{ISBN: "ISBN 978-3-16148-410-0", BranchID: env.branch.ID},
			wantStatus: http.StatusNotFound,
			wantCode:   "BOOK-001",
		},
		{
			name:       "unknown branch",
			memberID:   m.ID,
			body:       lending.BorrowRequest{ISBN: book.ISBN, BranchID: 9999},
			wantStatus: http.StatusNotFound,
			wantCode:   "BRANCH-001",
		},
		{
			name:       "unknown member",
			memberID:   9999,
			body:       lending.BorrowRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
			wantStatus: http.StatusNotFound,
			wantCode:   "MEMBER-001",
		},
		{
			name:       "not authenticated",
			memberID:   0,
			body:       lending.BorrowRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH-000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupLendingRouter(env, tt.memberID)

			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/loans",
				Body:   tt.body,
			})

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, tt.wantCode, errorResponse.Code)
		})
	}
}

func TestReturnAPI_LoanNotFound(t *testing.T) {
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID, testutil.WithCopies(env.branch.ID, 1))
	router := setupLendingRouter(env, m.ID)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/loans/return",
		Body:   lending.ReturnRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "LOAN-001", errorResponse.Code)
}

func TestLoansAPI_BorrowReturnAndList(t *testing.T) {
	// Given: A borrowed and returned copy
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID, testutil.WithCopies(env.branch.ID, 1))
	router := setupLendingRouter(env, m.ID)

	borrow := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/loans",
		Body:   lending.BorrowRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
	})
	require.Equal(t, http.StatusOK, borrow.Code)

	giveBack := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/loans/return",
		Body:   lending.ReturnRequest{ISBN: book.ISBN, BranchID: env.branch.ID},
	})
	require.Equal(t, http.StatusOK, giveBack.Code)

	var returned lending.OutcomeResponse[lending.ReturnDetails]
	testutil.ParseResponse(t, giveBack, &returned)
	require.Equal(t, lending.StatusAccepted, returned.Status)
	assert.True(t, returned.Details.OnTime)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/loans",
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)

	var response lending.ListBorrowedResponse
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Loans, 1)
	assert.True(t, response.Loans[0].IsReturned)
	assert.Nil(t, response.Loans[0].DaysLeft)
}

func TestSubscriptionAPI(t *testing.T) {
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID)
	router := setupLendingRouter(env, m.ID)
	subscribe := true

	first := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/subscriptions",
		Body:   lending.SubscriptionRequest{ISBN: book.ISBN, Subscribe: &subscribe},
	})
	second := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/subscriptions",
		Body:   lending.SubscriptionRequest{ISBN: book.ISBN, Subscribe: &subscribe},
	})

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var firstResponse, secondResponse lending.OutcomeResponse[lending.SubscriptionDetails]
	testutil.ParseResponse(t, first, &firstResponse)
	testutil.ParseResponse(t, second, &secondResponse)
	assert.Equal(t, lending.StatusAccepted, firstResponse.Status)
	assert.Equal(t, lending.StatusRejected, secondResponse.Status)
	assert.Equal(t, lending.ReasonAlreadySubscribed, secondResponse.Reason)
}

func TestSubscriptionAPI_MissingFlag(t *testing.T) {
	env := setupLending(t)
	m := testutil.CreateMember(t, env.db, adultBorn)
	book := testutil.CreateBook(t, env.db, env.author.ID)
	router := setupLendingRouter(env, m.ID)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/subscriptions",
		Body:   map[string]string{"isbn": book.ISBN},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
