package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSVUTF8(t *testing.T) {
	content := "IDRechazo,Caso,Responsable de Caso,Valor homologación\n101,Homologacion Producto,Gobierno de Datos,P999\n"

	table, err := ReadCSV(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, []string{"IDRechazo", "Caso", "Responsable de Caso", "Valor homologación"}, table.Columns)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "P999", table.Cell(0, 3))
}

func TestReadCSVStripsBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("IDRechazo,Caso,Responsable de Caso,Valor homologación\n1,a,b,c\n")...)

	table, err := ReadCSV(bytes.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, 0, table.ColumnIndex("IDRechazo"))
}

func TestReadCSVFallsBackToLatin1(t *testing.T) {
	// "Valor homologación" with ó encoded as Latin-1 byte 0xF3.
	header := []byte("IDRechazo,Caso,Responsable de Caso,Valor homologaci\xf3n\n1,a,b,c\n")

	table, err := ReadCSV(bytes.NewReader(header))
	require.NoError(t, err)
	require.Equal(t, 3, table.ColumnIndex("Valor homologación"))
}

func TestReadXLSXFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"IDRechazo", "Caso", "Responsable de Caso", "Valor homologación"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{101, "Homologacion Sucursal", "Gobierno de Datos", "S77"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "101", table.Cell(0, 0))
	require.Equal(t, "S77", table.Cell(0, 3))
}

func TestReadFileRejectsUnknownExtension(t *testing.T) {
	_, err := ReadFile("rechazos.xls", strings.NewReader("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unsupported file extension ".xls"`)
}

func TestReadFileDispatchesByExtension(t *testing.T) {
	content := "IDRechazo,Caso,Responsable de Caso,Valor homologación\n1,a,b,c\n"

	table, err := ReadFile("RECHAZOS.CSV", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
}
