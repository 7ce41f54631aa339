/*
Package utils contains decorators shared by every handler of the
application: panic recovery, logging, savepoints, metrics and publishing of
events produced by a delivered transaction.
*/
package utils
