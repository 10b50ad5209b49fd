package winerror

// win32 covers the system, file, pipe, network, logon, RPC and spooler
// ranges of the Win32 error space.
var win32 = table(
	Entry{ErrorSuccess, "ERROR_SUCCESS", "The operation completed successfully."},
	Entry{1, "ERROR_INVALID_FUNCTION", "Incorrect function."},
	Entry{ErrorFileNotFound, "ERROR_FILE_NOT_FOUND", "The system cannot find the file specified."},
	Entry{ErrorPathNotFound, "ERROR_PATH_NOT_FOUND", "The system cannot find the path specified."},
	Entry{4, "ERROR_TOO_MANY_OPEN_FILES", "The system cannot open the file."},
	Entry{ErrorAccessDenied, "ERROR_ACCESS_DENIED", "Access is denied."},
	Entry{ErrorInvalidHandle, "ERROR_INVALID_HANDLE", "The handle is invalid."},
	Entry{7, "ERROR_ARENA_TRASHED", "The storage control blocks were destroyed."},
	Entry{ErrorNotEnoughMemory, "ERROR_NOT_ENOUGH_MEMORY", "Not enough memory resources are available to process this command."},
	Entry{9, "ERROR_INVALID_BLOCK", "The storage control block address is invalid."},
	Entry{10, "ERROR_BAD_ENVIRONMENT", "The environment is incorrect."},
	Entry{11, "ERROR_BAD_FORMAT", "An attempt was made to load a program with an incorrect format."},
	Entry{12, "ERROR_INVALID_ACCESS", "The access code is invalid."},
	Entry{13, "ERROR_INVALID_DATA", "The data is invalid."},
	Entry{14, "ERROR_OUTOFMEMORY", "Not enough memory resources are available to complete this operation."},
	Entry{15, "ERROR_INVALID_DRIVE", "The system cannot find the drive specified."},
	Entry{16, "ERROR_CURRENT_DIRECTORY", "The directory cannot be removed."},
	Entry{17, "ERROR_NOT_SAME_DEVICE", "The system cannot move the file to a different disk drive."},
	Entry{18, "ERROR_NO_MORE_FILES", "There are no more files."},
	Entry{19, "ERROR_WRITE_PROTECT", "The media is write protected."},
	Entry{20, "ERROR_BAD_UNIT", "The system cannot find the device specified."},
	Entry{21, "ERROR_NOT_READY", "The device is not ready."},
	Entry{22, "ERROR_BAD_COMMAND", "The device does not recognize the command."},
	Entry{23, "ERROR_CRC", "Data error (cyclic redundancy check)."},
	Entry{24, "ERROR_BAD_LENGTH", "The program issued a command but the command length is incorrect."},
	Entry{25, "ERROR_SEEK", "The drive cannot locate a specific area or track on the disk."},
	Entry{26, "ERROR_NOT_DOS_DISK", "The specified disk or diskette cannot be accessed."},
	Entry{27, "ERROR_SECTOR_NOT_FOUND", "The drive cannot find the sector requested."},
	Entry{28, "ERROR_OUT_OF_PAPER", "The printer is out of paper."},
	Entry{29, "ERROR_WRITE_FAULT", "The system cannot write to the specified device."},
	Entry{30, "ERROR_READ_FAULT", "The system cannot read from the specified device."},
	Entry{31, "ERROR_GEN_FAILURE", "A device attached to the system is not functioning."},
	Entry{32, "ERROR_SHARING_VIOLATION", "The process cannot access the file because it is being used by another process."},
	Entry{33, "ERROR_LOCK_VIOLATION", "The process cannot access the file because another process has locked a portion of the file."},
	Entry{34, "ERROR_WRONG_DISK", "The wrong diskette is in the drive."},
	Entry{36, "ERROR_SHARING_BUFFER_EXCEEDED", "Too many files opened for sharing."},
	Entry{38, "ERROR_HANDLE_EOF", "Reached the end of the file."},
	Entry{39, "ERROR_HANDLE_DISK_FULL", "The disk is full."},
	Entry{ErrorNotSupported, "ERROR_NOT_SUPPORTED", "The request is not supported."},
	Entry{51, "ERROR_REM_NOT_LIST", "Windows cannot find the network path."},
	Entry{52, "ERROR_DUP_NAME", "You were not connected because a duplicate name exists on the network."},
	Entry{ErrorBadNetpath, "ERROR_BAD_NETPATH", "The network path was not found."},
	Entry{54, "ERROR_NETWORK_BUSY", "The network is busy."},
	Entry{55, "ERROR_DEV_NOT_EXIST", "The specified network resource or device is no longer available."},
	Entry{56, "ERROR_TOO_MANY_CMDS", "The network BIOS command limit has been reached."},
	Entry{57, "ERROR_ADAP_HDW_ERR", "A network adapter hardware error occurred."},
	Entry{58, "ERROR_BAD_NET_RESP", "The specified server cannot perform the requested operation."},
	Entry{59, "ERROR_UNEXP_NET_ERR", "An unexpected network error occurred."},
	Entry{60, "ERROR_BAD_REM_ADAP", "The remote adapter is not compatible."},
	Entry{61, "ERROR_PRINTQ_FULL", "The printer queue is full."},
	Entry{62, "ERROR_NO_SPOOL_SPACE", "Space to store the file waiting to be printed is not available on the server."},
	Entry{63, "ERROR_PRINT_CANCELLED", "Your file waiting to be printed was deleted."},
	Entry{64, "ERROR_NETNAME_DELETED", "The specified network name is no longer available."},
	Entry{65, "ERROR_NETWORK_ACCESS_DENIED", "Network access is denied."},
	Entry{66, "ERROR_BAD_DEV_TYPE", "The network resource type is not correct."},
	Entry{ErrorBadNetName, "ERROR_BAD_NET_NAME", "The network name cannot be found."},
	Entry{68, "ERROR_TOO_MANY_NAMES", "The name limit for the local computer network adapter card was exceeded."},
	Entry{69, "ERROR_TOO_MANY_SESS", "The network BIOS session limit was exceeded."},
	Entry{70, "ERROR_SHARING_PAUSED", "The remote server has been paused or is in the process of being started."},
	Entry{71, "ERROR_REQ_NOT_ACCEP", "No more connections can be made to this remote computer at this time."},
	Entry{72, "ERROR_REDIR_PAUSED", "The specified printer or disk device has been paused."},
	Entry{80, "ERROR_FILE_EXISTS", "The file exists."},
	Entry{82, "ERROR_CANNOT_MAKE", "The directory or file cannot be created."},
	Entry{83, "ERROR_FAIL_I24", "Fail on INT 24."},
	Entry{84, "ERROR_OUT_OF_STRUCTURES", "Storage to process this request is not available."},
	Entry{85, "ERROR_ALREADY_ASSIGNED", "The local device name is already in use."},
	Entry{86, "ERROR_INVALID_PASSWORD", "The specified network password is not correct."},
	Entry{ErrorInvalidParameter, "ERROR_INVALID_PARAMETER", "The parameter is incorrect."},
	Entry{88, "ERROR_NET_WRITE_FAULT", "A write fault occurred on the network."},
	Entry{89, "ERROR_NO_PROC_SLOTS", "The system cannot start another process at this time."},
	Entry{100, "ERROR_TOO_MANY_SEMAPHORES", "Cannot create another system semaphore."},
	Entry{109, "ERROR_BROKEN_PIPE", "The pipe has been ended."},
	Entry{110, "ERROR_OPEN_FAILED", "The system cannot open the device or file specified."},
	Entry{111, "ERROR_BUFFER_OVERFLOW", "The file name is too long."},
	Entry{112, "ERROR_DISK_FULL", "There is not enough space on the disk."},
	Entry{120, "ERROR_CALL_NOT_IMPLEMENTED", "This function is not supported on this system."},
	Entry{121, "ERROR_SEM_TIMEOUT", "The semaphore timeout period has expired."},
	Entry{ErrorInsufficientBuffer, "ERROR_INSUFFICIENT_BUFFER", "The data area passed to a system call is too small."},
	Entry{123, "ERROR_INVALID_NAME", "The filename, directory name, or volume label syntax is incorrect."},
	Entry{ErrorInvalidLevel, "ERROR_INVALID_LEVEL", "The system call level is not correct."},
	Entry{ErrorModNotFound, "ERROR_MOD_NOT_FOUND", "The specified module could not be found."},
	Entry{ErrorProcNotFound, "ERROR_PROC_NOT_FOUND", "The specified procedure could not be found."},
	Entry{128, "ERROR_WAIT_NO_CHILDREN", "There are no child processes to wait for."},
	Entry{130, "ERROR_DIRECT_ACCESS_HANDLE", "Attempt to use a file handle to an open disk partition for an operation other than raw disk I/O."},
	Entry{131, "ERROR_NEGATIVE_SEEK", "An attempt was made to move the file pointer before the beginning of the file."},
	Entry{132, "ERROR_SEEK_ON_DEVICE", "The file pointer cannot be set on the specified device or file."},
	Entry{145, "ERROR_DIR_NOT_EMPTY", "The directory is not empty."},
	Entry{148, "ERROR_PATH_BUSY", "The path specified cannot be used at this time."},
	Entry{158, "ERROR_NOT_LOCKED", "The segment is already unlocked."},
	Entry{161, "ERROR_BAD_PATHNAME", "The specified path is invalid."},
	Entry{164, "ERROR_MAX_THRDS_REACHED", "No more threads can be created in the system."},
	Entry{167, "ERROR_LOCK_FAILED", "Unable to lock a region of a file."},
	Entry{170, "ERROR_BUSY", "The requested resource is in use."},
	Entry{173, "ERROR_CANCEL_VIOLATION", "A lock request was not outstanding for the supplied cancel region."},
	Entry{183, "ERROR_ALREADY_EXISTS", "Cannot create a file when that file already exists."},
	Entry{186, "ERROR_INVALID_FLAG_NUMBER", "The flag passed is not correct."},
	Entry{187, "ERROR_SEM_NOT_FOUND", "The specified system semaphore name was not found."},
	Entry{ErrorBadExeFormat, "ERROR_BAD_EXE_FORMAT", "The file is not a valid Win32 application."},
	Entry{203, "ERROR_ENVVAR_NOT_FOUND", "The system could not find the environment option that was entered."},
	Entry{206, "ERROR_FILENAME_EXCED_RANGE", "The filename or extension is too long."},
	Entry{214, "ERROR_TOO_MANY_MODULES", "Too many dynamic-link modules are attached to this program or dynamic-link module."},
	Entry{215, "ERROR_NESTING_NOT_ALLOWED", "Cannot nest calls to LoadModule."},
	Entry{216, "ERROR_EXE_MACHINE_TYPE_MISMATCH", "This version of the file is not compatible with the version of Windows you're running."},
	Entry{225, "ERROR_VIRUS_INFECTED", "Operation did not complete successfully because the file contains a virus or potentially unwanted software."},
	Entry{230, "ERROR_BAD_PIPE", "The pipe state is invalid."},
	Entry{231, "ERROR_PIPE_BUSY", "All pipe instances are busy."},
	Entry{232, "ERROR_NO_DATA", "The pipe is being closed."},
	Entry{233, "ERROR_PIPE_NOT_CONNECTED", "No process is on the other end of the pipe."},
	Entry{ErrorMoreData, "ERROR_MORE_DATA", "More data is available."},
	Entry{240, "ERROR_VC_DISCONNECTED", "The session was canceled."},
	Entry{254, "ERROR_INVALID_EA_NAME", "The specified extended attribute name was invalid."},
	Entry{258, "WAIT_TIMEOUT", "The wait operation timed out."},
	Entry{259, "ERROR_NO_MORE_ITEMS", "No more data is available."},
	Entry{266, "ERROR_CANNOT_COPY", "The copy functions cannot be used."},
	Entry{267, "ERROR_DIRECTORY", "The directory name is invalid."},
	Entry{275, "ERROR_EAS_DIDNT_FIT", "The extended attributes did not fit in the buffer."},
	Entry{282, "ERROR_EAS_NOT_SUPPORTED", "The mounted file system does not support extended attributes."},
	Entry{288, "ERROR_NOT_OWNER", "Attempt to release mutex not owned by caller."},
	Entry{298, "ERROR_TOO_MANY_POSTS", "Too many posts were made to a semaphore."},
	Entry{299, "ERROR_PARTIAL_COPY", "Only part of a ReadProcessMemory or WriteProcessMemory request was completed."},
	Entry{300, "ERROR_OPLOCK_NOT_GRANTED", "The oplock request is denied."},
	Entry{487, "ERROR_INVALID_ADDRESS", "Attempt to access invalid address."},
	Entry{534, "ERROR_ARITHMETIC_OVERFLOW", "Arithmetic result exceeded 32 bits."},
	Entry{535, "ERROR_PIPE_CONNECTED", "There is a process on other end of the pipe."},
	Entry{536, "ERROR_PIPE_LISTENING", "Waiting for a process to open the other end of the pipe."},
	Entry{995, "ERROR_OPERATION_ABORTED", "The I/O operation has been aborted because of either a thread exit or an application request."},
	Entry{996, "ERROR_IO_INCOMPLETE", "Overlapped I/O event is not in a signaled state."},
	Entry{997, "ERROR_IO_PENDING", "Overlapped I/O operation is in progress."},
	Entry{998, "ERROR_NOACCESS", "Invalid access to memory location."},
	Entry{1001, "ERROR_STACK_OVERFLOW", "Recursion too deep; the stack overflowed."},
	Entry{ErrorInvalidFlags, "ERROR_INVALID_FLAGS", "Invalid flags."},
	Entry{1005, "ERROR_UNRECOGNIZED_VOLUME", "The volume does not contain a recognized file system."},
	Entry{1006, "ERROR_FILE_INVALID", "The volume for a file has been externally altered so that the opened file is no longer valid."},
	Entry{1009, "ERROR_BADDB", "The configuration registry database is corrupt."},
	Entry{1010, "ERROR_BADKEY", "The configuration registry key is invalid."},
	Entry{1011, "ERROR_CANTOPEN", "The configuration registry key could not be opened."},
	Entry{1012, "ERROR_CANTREAD", "The configuration registry key could not be read."},
	Entry{1013, "ERROR_CANTWRITE", "The configuration registry key could not be written."},
	Entry{1015, "ERROR_REGISTRY_CORRUPT", "The registry is corrupted."},
	Entry{1018, "ERROR_KEY_DELETED", "Illegal operation attempted on a registry key that has been marked for deletion."},
	Entry{1051, "ERROR_DEPENDENT_SERVICES_RUNNING", "A stop control has been sent to a service that other running services are dependent on."},
	Entry{1052, "ERROR_INVALID_SERVICE_CONTROL", "The requested control is not valid for this service."},
	Entry{1053, "ERROR_SERVICE_REQUEST_TIMEOUT", "The service did not respond to the start or control request in a timely fashion."},
	Entry{1056, "ERROR_SERVICE_ALREADY_RUNNING", "An instance of the service is already running."},
	Entry{1058, "ERROR_SERVICE_DISABLED", "The service cannot be started, either because it is disabled or because it has no enabled devices associated with it."},
	Entry{1060, "ERROR_SERVICE_DOES_NOT_EXIST", "The specified service does not exist as an installed service."},
	Entry{1062, "ERROR_SERVICE_NOT_ACTIVE", "The service has not been started."},
	Entry{1067, "ERROR_PROCESS_ABORTED", "The process terminated unexpectedly."},
	Entry{1072, "ERROR_SERVICE_MARKED_FOR_DELETE", "The specified service has been marked for deletion."},
	Entry{ErrorDllInitFailed, "ERROR_DLL_INIT_FAILED", "A dynamic link library (DLL) initialization routine failed."},
	Entry{1115, "ERROR_SHUTDOWN_IN_PROGRESS", "A system shutdown is in progress."},
	Entry{1130, "ERROR_NOT_ENOUGH_SERVER_MEMORY", "Not enough server memory resources are available to process this command."},
	Entry{1150, "ERROR_OLD_WIN_VERSION", "The specified program requires a newer version of Windows."},
	Entry{1155, "ERROR_NO_ASSOCIATION", "No application is associated with the specified file for this operation."},
	Entry{1157, "ERROR_DLL_NOT_FOUND", "One of the library files needed to run this application cannot be found."},
	Entry{1168, "ERROR_NOT_FOUND", "Element not found."},
	Entry{1200, "ERROR_BAD_DEVICE", "The specified device name is invalid."},
	Entry{1201, "ERROR_CONNECTION_UNAVAIL", "The device is not currently connected but it is a remembered connection."},
	Entry{1202, "ERROR_DEVICE_ALREADY_REMEMBERED", "The local device name has a remembered connection to another network resource."},
	Entry{1203, "ERROR_NO_NET_OR_BAD_PATH", "The network path was either typed incorrectly, does not exist, or the network provider is not currently available."},
	Entry{1204, "ERROR_BAD_PROVIDER", "The specified network provider name is invalid."},
	Entry{1205, "ERROR_CANNOT_OPEN_PROFILE", "Unable to open the network connection profile."},
	Entry{1206, "ERROR_BAD_PROFILE", "The network connection profile is corrupted."},
	Entry{1207, "ERROR_NOT_CONTAINER", "Cannot enumerate a noncontainer."},
	Entry{1208, "ERROR_EXTENDED_ERROR", "An extended error has occurred."},
	Entry{1209, "ERROR_INVALID_GROUPNAME", "The format of the specified group name is invalid."},
	Entry{1210, "ERROR_INVALID_COMPUTERNAME", "The format of the specified computer name is invalid."},
	Entry{1211, "ERROR_INVALID_EVENTNAME", "The format of the specified event name is invalid."},
	Entry{1212, "ERROR_INVALID_DOMAINNAME", "The format of the specified domain name is invalid."},
	Entry{1213, "ERROR_INVALID_SERVICENAME", "The format of the specified service name is invalid."},
	Entry{1214, "ERROR_INVALID_NETNAME", "The format of the specified network name is invalid."},
	Entry{1215, "ERROR_INVALID_SHARENAME", "The format of the specified share name is invalid."},
	Entry{1216, "ERROR_INVALID_PASSWORDNAME", "The format of the specified password is invalid."},
	Entry{1217, "ERROR_INVALID_MESSAGENAME", "The format of the specified message name is invalid."},
	Entry{1218, "ERROR_INVALID_MESSAGEDEST", "The format of the specified message destination is invalid."},
	Entry{1219, "ERROR_SESSION_CREDENTIAL_CONFLICT", "Multiple connections to a server or shared resource by the same user, using more than one user name, are not allowed."},
	Entry{1220, "ERROR_REMOTE_SESSION_LIMIT_EXCEEDED", "An attempt was made to establish a session to a network server, but there are already too many sessions established to that server."},
	Entry{1221, "ERROR_DUP_DOMAINNAME", "The workgroup or domain name is already in use by another computer on the network."},
	Entry{1222, "ERROR_NO_NETWORK", "The network is not present or not started."},
	Entry{1223, "ERROR_CANCELLED", "The operation was canceled by the user."},
	Entry{1224, "ERROR_USER_MAPPED_FILE", "The requested operation cannot be performed on a file with a user-mapped section open."},
	Entry{1225, "ERROR_CONNECTION_REFUSED", "The remote computer refused the network connection."},
	Entry{1226, "ERROR_GRACEFUL_DISCONNECT", "The network connection was gracefully closed."},
	Entry{1227, "ERROR_ADDRESS_ALREADY_ASSOCIATED", "The network transport endpoint already has an address associated with it."},
	Entry{1228, "ERROR_ADDRESS_NOT_ASSOCIATED", "An address has not yet been associated with the network endpoint."},
	Entry{1229, "ERROR_CONNECTION_INVALID", "An operation was attempted on a nonexistent network connection."},
	Entry{1230, "ERROR_CONNECTION_ACTIVE", "An invalid operation was attempted on an active network connection."},
	Entry{1231, "ERROR_NETWORK_UNREACHABLE", "The network location cannot be reached."},
	Entry{1232, "ERROR_HOST_UNREACHABLE", "The network location cannot be reached."},
	Entry{1233, "ERROR_PROTOCOL_UNREACHABLE", "The network location cannot be reached."},
	Entry{1234, "ERROR_PORT_UNREACHABLE", "No service is operating at the destination network endpoint on the remote system."},
	Entry{1235, "ERROR_REQUEST_ABORTED", "The request was aborted."},
	Entry{1236, "ERROR_CONNECTION_ABORTED", "The network connection was aborted by the local system."},
	Entry{1237, "ERROR_RETRY", "The operation could not be completed. A retry should be performed."},
	Entry{1238, "ERROR_CONNECTION_COUNT_LIMIT", "A connection to the server could not be made because the limit on the number of concurrent connections for this account has been reached."},
	Entry{1240, "ERROR_INCORRECT_ADDRESS", "The account is not authorized to log in from this station."},
	Entry{1242, "ERROR_ALREADY_REGISTERED", "The service is already registered."},
	Entry{1243, "ERROR_SERVICE_NOT_FOUND", "The specified service does not exist."},
	Entry{1244, "ERROR_NOT_AUTHENTICATED", "The operation being requested was not performed because the user has not been authenticated."},
	Entry{1245, "ERROR_NOT_LOGGED_ON", "The operation being requested was not performed because the user has not logged on to the network."},
	Entry{1246, "ERROR_CONTINUE", "Continue with work in progress."},
	Entry{1300, "ERROR_NOT_ALL_ASSIGNED", "Not all privileges or groups referenced are assigned to the caller."},
	Entry{1301, "ERROR_SOME_NOT_MAPPED", "Some mapping between account names and security IDs was not done."},
	Entry{1314, "ERROR_PRIVILEGE_NOT_HELD", "A required privilege is not held by the client."},
	Entry{1317, "ERROR_NO_SUCH_USER", "The specified account does not exist."},
	Entry{1323, "ERROR_WRONG_PASSWORD", "Unable to update the password. The value provided as the current password is incorrect."},
	Entry{1326, "ERROR_LOGON_FAILURE", "The user name or password is incorrect."},
	Entry{1327, "ERROR_ACCOUNT_RESTRICTION", "Account restrictions are preventing this user from signing in."},
	Entry{1328, "ERROR_INVALID_LOGON_HOURS", "Your account has time restrictions that keep you from signing in right now."},
	Entry{1329, "ERROR_INVALID_WORKSTATION", "This user isn't allowed to sign in to this computer."},
	Entry{1330, "ERROR_PASSWORD_EXPIRED", "The password for this account has expired."},
	Entry{1331, "ERROR_ACCOUNT_DISABLED", "This user can't sign in because this account is currently disabled."},
	Entry{1332, "ERROR_NONE_MAPPED", "No mapping between account names and security IDs was done."},
	Entry{1355, "ERROR_NO_SUCH_DOMAIN", "The specified domain either does not exist or could not be contacted."},
	Entry{1385, "ERROR_LOGON_TYPE_NOT_GRANTED", "Logon failure: the user has not been granted the requested logon type at this computer."},
	Entry{1396, "ERROR_WRONG_TARGET_NAME", "The target account name is incorrect."},
	Entry{1450, "ERROR_NO_SYSTEM_RESOURCES", "Insufficient system resources exist to complete the requested service."},
	Entry{1460, "ERROR_TIMEOUT", "This operation returned because the timeout period expired."},
	Entry{1717, "RPC_S_UNKNOWN_IF", "The interface is unknown."},
	Entry{1722, "RPC_S_SERVER_UNAVAILABLE", "The RPC server is unavailable."},
	Entry{1726, "RPC_S_CALL_FAILED", "The remote procedure call failed."},
	Entry{1783, "RPC_X_BAD_STUB_DATA", "The stub received bad data."},
	Entry{ErrorInvalidUserBuffer, "ERROR_INVALID_USER_BUFFER", "The supplied user buffer is not valid for the requested operation."},
	Entry{1785, "ERROR_UNRECOGNIZED_MEDIA", "The disk media is not recognized. It may not be formatted."},
	Entry{ErrorPrinterDriverAlreadyInstalled, "ERROR_PRINTER_DRIVER_ALREADY_INSTALLED", "The specified printer driver is already installed."},
	Entry{ErrorUnknownPort, "ERROR_UNKNOWN_PORT", "The specified port is unknown."},
	Entry{ErrorUnknownPrinterDriver, "ERROR_UNKNOWN_PRINTER_DRIVER", "The printer driver is unknown."},
	Entry{ErrorUnknownPrintProcessor, "ERROR_UNKNOWN_PRINTPROCESSOR", "The print processor is unknown."},
	Entry{1799, "ERROR_INVALID_SEPARATOR_FILE", "The specified separator file is invalid."},
	Entry{1800, "ERROR_INVALID_PRIORITY", "The specified priority is invalid."},
	Entry{ErrorInvalidPrinterName, "ERROR_INVALID_PRINTER_NAME", "The printer name is invalid."},
	Entry{ErrorPrinterAlreadyExists, "ERROR_PRINTER_ALREADY_EXISTS", "The printer already exists."},
	Entry{1803, "ERROR_INVALID_PRINTER_COMMAND", "The printer command is invalid."},
	Entry{1804, "ERROR_INVALID_DATATYPE", "The specified datatype is invalid."},
	Entry{ErrorInvalidEnvironment, "ERROR_INVALID_ENVIRONMENT", "The environment specified is invalid."},
	Entry{1905, "ERROR_PRINTER_DELETED", "The specified printer has been deleted."},
	Entry{1906, "ERROR_INVALID_PRINTER_STATE", "The state of the printer is invalid."},
	Entry{3000, "ERROR_UNKNOWN_PRINT_MONITOR", "The specified print monitor is unknown."},
	Entry{ErrorPrinterDriverInUse, "ERROR_PRINTER_DRIVER_IN_USE", "The specified printer driver is currently in use."},
	Entry{3002, "ERROR_SPOOL_FILE_NOT_FOUND", "The spool file was not found."},
	Entry{3003, "ERROR_SPL_NO_STARTDOC", "A StartDocPrinter call was not issued."},
	Entry{3004, "ERROR_SPL_NO_ADDJOB", "An AddJob call was not issued."},
	Entry{3005, "ERROR_PRINT_PROCESSOR_ALREADY_INSTALLED", "The specified print processor has already been installed."},
	Entry{3006, "ERROR_PRINT_MONITOR_ALREADY_INSTALLED", "The specified print monitor has already been installed."},
	Entry{3007, "ERROR_INVALID_PRINT_MONITOR", "The specified print monitor does not have the required functions."},
	Entry{3008, "ERROR_PRINT_MONITOR_IN_USE", "The specified print monitor is currently in use."},
	Entry{3009, "ERROR_PRINTER_HAS_JOBS_QUEUED", "The requested operation is not allowed when there are jobs queued to the printer."},
	Entry{3010, "ERROR_SUCCESS_REBOOT_REQUIRED", "The requested operation is successful. Changes will not be effective until the system is rebooted."},
	Entry{3011, "ERROR_SUCCESS_RESTART_REQUIRED", "The requested operation is successful. Changes will not be effective until the service is restarted."},
	Entry{3012, "ERROR_PRINTER_NOT_FOUND", "No printers were found."},
	Entry{ErrorPrinterDriverWarned, "ERROR_PRINTER_DRIVER_WARNED", "The specified printer driver was detected on the system and is known to be unreliable."},
	Entry{ErrorPrinterDriverBlocked, "ERROR_PRINTER_DRIVER_BLOCKED", "The printer driver is known to be unreliable."},
	Entry{ErrorPrinterDriverPackageInUse, "ERROR_PRINTER_DRIVER_PACKAGE_IN_USE", "The specified printer driver package is currently in use."},
	Entry{3016, "ERROR_CORE_DRIVER_PACKAGE_NOT_FOUND", "The core driver package that is required by the printer driver package is missing."},
	Entry{3017, "ERROR_FAIL_REBOOT_REQUIRED", "The requested operation failed. A system reboot is required to roll back changes made."},
	Entry{3018, "ERROR_FAIL_REBOOT_INITIATED", "The requested operation failed. A system reboot has been initiated to roll back changes made."},
	Entry{3019, "ERROR_PRINTER_DRIVER_DOWNLOAD_NEEDED", "The specified printer driver was not found on the system and needs to be downloaded."},
	Entry{3020, "ERROR_PRINT_JOB_RESTART_REQUIRED", "The requested print job has failed to print."},
	Entry{3021, "ERROR_INVALID_PRINTER_DRIVER_MANIFEST", "The printer driver does not contain a valid manifest, or contains too many manifests."},
	Entry{3022, "ERROR_PRINTER_NOT_SHAREABLE", "The specified printer cannot be shared."},
)
