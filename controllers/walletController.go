package controllers

import (
	"encoding/json"
	"net/http"

	"payledger/model"
	"payledger/services"
	"payledger/utility/errorcode"
	"payledger/utility/response"
)

// CreateWithdrawal ... Books a withdrawal request for the authenticated user
// @Summary request a withdrawal
// @Router /crypto/withdrawals [post]
func (controller *WalletController) CreateWithdrawal(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()
	requestData := model.CreateWithdrawalRequest{}

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "CreateWithdrawal", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	if err := json.NewDecoder(requestReader.Body).Decode(&requestData); err != nil {
		ReturnError(responseWriter, "CreateWithdrawal", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.INPUT_ERR_MSG), controller.Logger)
		return
	}
	controller.Logger.Info("Incoming request details for CreateWithdrawal : userID : %v, currency : %s", claims.UserID, requestData.Currency)

	if validationErr := ValidateRequest(controller.Validator, requestData, controller.Translator); len(validationErr) > 0 {
		writeJSON(responseWriter, http.StatusBadRequest, apiResponse.ValidateError(errorcode.VALIDATION_ERR, errorcode.VALIDATION_ERR_MSG, validationErr))
		return
	}

	withdrawal, err := controller.LedgerService.CreateWithdrawal(controller.Repository, claims.UserID, requestData)
	if err != nil {
		status, payload := errResponse(err, apiResponse)
		ReturnError(responseWriter, "CreateWithdrawal", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusCreated, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, services.NormalizeWithdrawal(withdrawal)))
}

// GetWithdrawals ... Lists the authenticated user's withdrawal requests
// @Summary list own withdrawals
// @Router /crypto/withdrawals [get]
func (controller *WalletController) GetWithdrawals(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "GetWithdrawals", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	responseData, err := controller.LedgerService.FetchUserWithdrawals(controller.Repository, claims.UserID)
	if err != nil {
		status, payload := errResponse(err, apiResponse)
		ReturnError(responseWriter, "GetWithdrawals", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, responseData))
}

// GetDeposits ... Lists the authenticated user's deposits
// @Summary list own deposits
// @Router /crypto/deposits [get]
func (controller *WalletController) GetDeposits(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()

	claims, err := requestClaims(requestReader)
	if err != nil {
		ReturnError(responseWriter, "GetDeposits", http.StatusUnauthorized, err, apiResponse.PlainError(errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG), controller.Logger)
		return
	}

	responseData, err := controller.LedgerService.FetchUserDeposits(controller.Repository, claims.UserID)
	if err != nil {
		status, payload := errResponse(err, apiResponse)
		ReturnError(responseWriter, "GetDeposits", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, responseData))
}

// DepositIPN ... Payment processor webhook reporting an inbound transfer.
// Replays of an already-recorded transaction hash are acknowledged without
// creating a second deposit.
// @Summary record an inbound transfer
// @Router /crypto/deposits/ipn [post]
func (controller *WalletController) DepositIPN(responseWriter http.ResponseWriter, requestReader *http.Request) {

	apiResponse := response.New()
	requestData := model.DepositIPNRequest{}

	if err := json.NewDecoder(requestReader.Body).Decode(&requestData); err != nil {
		ReturnError(responseWriter, "DepositIPN", http.StatusBadRequest, err, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.INPUT_ERR_MSG), controller.Logger)
		return
	}
	controller.Logger.Info("Incoming request details for DepositIPN : txHash : %s, currency : %s", requestData.TxHash, requestData.Currency)

	if validationErr := ValidateRequest(controller.Validator, requestData, controller.Translator); len(validationErr) > 0 {
		writeJSON(responseWriter, http.StatusBadRequest, apiResponse.ValidateError(errorcode.VALIDATION_ERR, errorcode.VALIDATION_ERR_MSG, validationErr))
		return
	}

	deposit, err := controller.LedgerService.RecordDeposit(controller.Repository, requestData)
	if err != nil {
		status, payload := errResponse(err, apiResponse)
		ReturnError(responseWriter, "DepositIPN", status, err, payload, controller.Logger)
		return
	}

	writeJSON(responseWriter, http.StatusOK, apiResponse.Successful(errorcode.SUCCESS, errorcode.SUCCESS_MSG, services.NormalizeDeposit(deposit)))
}
