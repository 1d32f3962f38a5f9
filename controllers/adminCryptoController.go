package controllers

import (
	"encoding/json"
	"net/http"

	"payledger/model"
	"payledger/services"
	"payledger/utility"
	"payledger/utility/errorcode"
	"payledger/utility/response"

	"github.com/gorilla/mux"
)

// ApproveDeposit ... Approves a pending deposit and credits the user balance
// @Summary approve a pending deposit
// @Router /admin/crypto/deposits/{depositId}/approve [post]
func (controller *AdminCryptoController) ApproveDeposit(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "ApproveDeposit", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	routeParams := mux.Vars(requestReader)
	depositID, err := utility.ToUUID(routeParams["depositId"])
	if err != nil {
		ReturnError(responseWriter, "ApproveDeposit", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.UUID_CAST_ERR_MSG), controller.Logger)
		return
	}
	controller.Logger.Info("Incoming request details for ApproveDeposit : depositID : %v, adminID : %v", depositID, claims.UserID)

	deposit, err := controller.ApprovalService.ApproveDeposit(controller.Repository, depositID, claims.UserID)
	if err != nil {
		status, payload := adminErrResponse(err, apiResponse)
		ReturnError(responseWriter, "ApproveDeposit", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, services.NormalizeDeposit(deposit)))
}

// RejectDeposit ... Rejects a pending deposit with a mandatory reason
// @Summary reject a pending deposit
// @Router /admin/crypto/deposits/{depositId}/reject [post]
func (controller *AdminCryptoController) RejectDeposit(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()
	requestData := model.RejectRequest{}

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "RejectDeposit", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	routeParams := mux.Vars(requestReader)
	depositID, err := utility.ToUUID(routeParams["depositId"])
	if err != nil {
		ReturnError(responseWriter, "RejectDeposit", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.UUID_CAST_ERR_MSG), controller.Logger)
		return
	}

	json.NewDecoder(requestReader.Body).Decode(&requestData)
	controller.Logger.Info("Incoming request details for RejectDeposit : depositID : %v, adminID : %v", depositID, claims.UserID)

	if validationErr := ValidateRequest(controller.Validator, requestData, controller.Translator); len(validationErr) > 0 {
		writeJSON(responseWriter, http.StatusBadRequest, apiResponse.ValidateError(errorcode.VALIDATION_ERR, errorcode.VALIDATION_ERR_MSG, validationErr))
		return
	}

	deposit, err := controller.ApprovalService.RejectDeposit(controller.Repository, depositID, claims.UserID, requestData.Reason)
	if err != nil {
		status, payload := adminErrResponse(err, apiResponse)
		ReturnError(responseWriter, "RejectDeposit", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, services.NormalizeDeposit(deposit)))
}

// ApproveWithdrawal ... Approves a pending withdrawal for dispatch
// @Summary approve a pending withdrawal
// @Router /admin/crypto/withdrawals/{withdrawalId}/approve [post]
func (controller *AdminCryptoController) ApproveWithdrawal(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "ApproveWithdrawal", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	routeParams := mux.Vars(requestReader)
	withdrawalID, err := utility.ToUUID(routeParams["withdrawalId"])
	if err != nil {
		ReturnError(responseWriter, "ApproveWithdrawal", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.UUID_CAST_ERR_MSG), controller.Logger)
		return
	}
	controller.Logger.Info("Incoming request details for ApproveWithdrawal : withdrawalID : %v, adminID : %v", withdrawalID, claims.UserID)

	withdrawal, err := controller.ApprovalService.ApproveWithdrawal(controller.Repository, withdrawalID, claims.UserID)
	if err != nil {
		status, payload := adminErrResponse(err, apiResponse)
		ReturnError(responseWriter, "ApproveWithdrawal", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, services.NormalizeWithdrawal(withdrawal)))
}

// RejectWithdrawal ... Rejects a pending withdrawal and returns the reserved
// amount to the user balance
// @Summary reject a pending withdrawal
// @Router /admin/crypto/withdrawals/{withdrawalId}/reject [post]
func (controller *AdminCryptoController) RejectWithdrawal(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()
	requestData := model.RejectRequest{}

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "RejectWithdrawal", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	routeParams := mux.Vars(requestReader)
	withdrawalID, err := utility.ToUUID(routeParams["withdrawalId"])
	if err != nil {
		ReturnError(responseWriter, "RejectWithdrawal", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.UUID_CAST_ERR_MSG), controller.Logger)
		return
	}

	json.NewDecoder(requestReader.Body).Decode(&requestData)
	controller.Logger.Info("Incoming request details for RejectWithdrawal : withdrawalID : %v, adminID : %v", withdrawalID, claims.UserID)

	if validationErr := ValidateRequest(controller.Validator, requestData, controller.Translator); len(validationErr) > 0 {
		writeJSON(responseWriter, http.StatusBadRequest, apiResponse.ValidateError(errorcode.VALIDATION_ERR, errorcode.VALIDATION_ERR_MSG, validationErr))
		return
	}

	withdrawal, err := controller.ApprovalService.RejectWithdrawal(controller.Repository, withdrawalID, claims.UserID, requestData.Reason)
	if err != nil {
		status, payload := adminErrResponse(err, apiResponse)
		ReturnError(responseWriter, "RejectWithdrawal", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, services.NormalizeWithdrawal(withdrawal)))
}

// GetPendingReview ... Lists deposits and withdrawals awaiting review
// @Summary list records pending review
// @Router /admin/crypto/pending [get]
func (controller *AdminCryptoController) GetPendingReview(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()

	responseData, err := controller.ApprovalService.PendingReview(controller.Repository)
	if err != nil {
		status, payload := errResponse(err, apiResponse)
		ReturnError(responseWriter, "GetPendingReview", status, err, payload, controller.Logger)
		return
	}

	controller.Logger.Info("Outgoing response to GetPendingReview request, %d deposits, %d withdrawals", len(responseData.Deposits), len(responseData.Withdrawals))
	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, responseData))
}

// GetStats ... Aggregated ledger counts and sums by status and currency
// @Summary ledger statistics
// @Router /admin/crypto/stats [get]
func (controller *AdminCryptoController) GetStats(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()

	responseData, err := controller.ApprovalService.Stats(controller.Repository)
	if err != nil {
		status, payload := errResponse(err, apiResponse)
		ReturnError(responseWriter, "GetStats", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, responseData))
}
